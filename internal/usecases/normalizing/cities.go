package normalizing

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Coordinate latitude e longitude de uma cidade
type Coordinate struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// CityTable tabela estática cidade -> coordenadas.
// A busca ignora acentos, caixa e espaços extras ("Sao Gabriel" == "São Gabriel").
type CityTable struct {
	entries map[string]Coordinate
	names   map[string]string // chave normalizada -> nome original
}

type cityFile struct {
	Cities []struct {
		Name       string `yaml:"name"`
		Coordinate `yaml:",inline"`
	} `yaml:"cities"`
}

// NewCityTable valida e indexa as cidades informadas. Nomes que colidem após a
// normalização só são aceitos se tiverem as mesmas coordenadas.
func NewCityTable(cities map[string]Coordinate) (*CityTable, error) {
	table := &CityTable{
		entries: make(map[string]Coordinate, len(cities)),
		names:   make(map[string]string, len(cities)),
	}

	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		coord := cities[name]
		key := FoldKey(name)

		if key == "" {
			errs = multierr.Append(errs, fmt.Errorf("cidade sem nome"))
			continue
		}

		if coord.Latitude < -90 || coord.Latitude > 90 || coord.Longitude < -180 || coord.Longitude > 180 {
			errs = multierr.Append(errs, fmt.Errorf("coordenadas inválidas para %s: (%f, %f)", name, coord.Latitude, coord.Longitude))
			continue
		}

		if existing, ok := table.entries[key]; ok && existing != coord {
			errs = multierr.Append(errs, fmt.Errorf("cidade %s conflita com %s", name, table.names[key]))
			continue
		}

		table.entries[key] = coord
		table.names[key] = name
	}

	if errs != nil {
		return nil, errs
	}

	return table, nil
}

// LoadCityTable carrega a tabela de coordenadas de um arquivo YAML
func LoadCityTable(path string) (*CityTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler tabela de cidades: %w", err)
	}

	var file cityFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("erro ao decodificar tabela de cidades: %w", err)
	}

	cities := make(map[string]Coordinate, len(file.Cities))
	for _, city := range file.Cities {
		cities[city.Name] = city.Coordinate
	}

	return NewCityTable(cities)
}

// Lookup busca as coordenadas de uma cidade
func (t *CityTable) Lookup(city string) (Coordinate, bool) {
	if t == nil {
		return Coordinate{}, false
	}
	coord, ok := t.entries[FoldKey(city)]
	return coord, ok
}

func (t *CityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// DefaultCityTable cidades atendidas hoje
func DefaultCityTable() *CityTable {
	table, err := NewCityTable(defaultCities)
	if err != nil {
		panic(err)
	}
	return table
}

var defaultCities = map[string]Coordinate{
	"Caxias do Sul":   {-29.1678, -51.1794},
	"Alta Feliz":      {-29.3919, -51.3228},
	"Porto Alegre":    {-30.0346, -51.2177},
	"Fazenda Souza":   {-29.1833, -51.0500},
	"São Marcos":      {-28.9675, -51.0678},
	"Antônio Prado":   {-28.8563, -51.2789},
	"São Gabriel":     {-30.3333, -54.3200},
	"Alvorada":        {-29.9914, -51.0809},
	"Itati":           {-29.4247, -50.1014},
	"Pinto Bandeira":  {-29.0972, -51.4500},
	"Auriflama":       {-20.6839, -50.5578},
	"Araraquara":      {-21.7845, -48.1780},
	"Montenegro":      {-29.6828, -51.4672},
	"Senador Canedo":  {-16.7083, -49.0914},
	"São Simão":       {-21.4736, -47.5511},
	"Goiânia":         {-16.6864, -49.2643},
	"Flores da Cunha": {-29.0269, -51.1878},
	"Gavião Peixoto":  {-21.8361, -48.4950},
	"Uruaçu":          {-14.5233, -49.1397},
}
