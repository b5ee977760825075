package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Table tabela de texto alinhada pela largura de exibição (acentos ocupam uma coluna)
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Colunas alinhadas à direita (valores)
	RightAligned map[int]bool
}

// Render escreve a tabela no formato markdown
func (t Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Headers))
	for i, header := range t.Headers {
		widths[i] = max(runewidth.StringWidth(header), 3)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString("## " + t.Title + "\n\n")
	}

	t.writeRow(&sb, t.Headers, widths)

	sb.WriteString("|")
	for i, width := range widths {
		if t.RightAligned[i] {
			sb.WriteString(" " + strings.Repeat("-", width-1) + ": |")
		} else {
			sb.WriteString(" " + strings.Repeat("-", width) + " |")
		}
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		t.writeRow(&sb, row, widths)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t Table) writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")
	for i, width := range widths {
		content := ""
		if i < len(row) {
			content = row[i]
		}

		padding := strings.Repeat(" ", max(width-runewidth.StringWidth(content), 0))
		if t.RightAligned[i] {
			sb.WriteString(" " + padding + content + " |")
		} else {
			sb.WriteString(" " + content + padding + " |")
		}
	}
	sb.WriteString("\n")
}

// FormatCurrency formata um valor inteiro em reais (ex: R$ 1.234)
func FormatCurrency(value int64) string {
	return printer.Sprintf("R$ %d", value)
}

// WriteViews escreve as agregações do dashboard e o resumo da normalização
func WriteViews(w io.Writer, views *domain.Views, summary domain.NormalizationReport) error {
	tables := []Table{
		labelValueTable("Top cidades", "Cidade", views.TopCities),
		labelValueTable("Vendas por produto", "Produto", views.ByProduct),
		labelValueTable("Vendas por cliente", "Cliente", views.ByCustomer),
		timeSeriesTable(views.TimeSeries),
		normalizationTable(summary),
	}

	for _, table := range tables {
		if err := table.Render(w); err != nil {
			return err
		}
	}
	return nil
}

func labelValueTable(title, label string, values []domain.LabelValue) Table {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v.Label, FormatCurrency(v.Value)})
	}
	return Table{
		Title:        title,
		Headers:      []string{label, "Valor"},
		Rows:         rows,
		RightAligned: map[int]bool{1: true},
	}
}

func timeSeriesTable(points []domain.TimeSeriesPoint) Table {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date, FormatCurrency(p.Value)})
	}
	return Table{
		Title:        "Vendas por data",
		Headers:      []string{"Data", "Valor"},
		Rows:         rows,
		RightAligned: map[int]bool{1: true},
	}
}

func normalizationTable(r domain.NormalizationReport) Table {
	count := func(n int) string { return printer.Sprintf("%d", n) }

	rows := [][]string{
		{"Registros lidos", count(r.Input)},
		{"IDs excluídos", count(r.Excluded)},
		{"Sem valor de venda", count(r.MissingAmount)},
		{"ID inválido", count(r.InvalidID)},
		{"ID duplicado", count(r.DuplicateID)},
		{"Data inválida", count(r.InvalidDate)},
		{"Valor inválido", count(r.InvalidAmount)},
		{"Cidade sem coordenadas", count(r.LookupMissCount())},
		{"Vendas na tabela", count(r.Output)},
	}
	return Table{
		Title:        "Normalização",
		Headers:      []string{"Etapa", "Registros"},
		Rows:         rows,
		RightAligned: map[int]bool{1: true},
	}
}

// Summary linha única com os totais do período filtrado
func Summary(count int, revenue int64) string {
	return fmt.Sprintf("%s vendas, total %s", printer.Sprintf("%d", count), FormatCurrency(revenue))
}
