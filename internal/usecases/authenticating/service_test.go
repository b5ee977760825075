package authenticating

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	users, err := ParseUsers([]string{
		fmt.Sprintf("rico:Ricardo Souza:%s", hashPassword(t, "vinho123")),
		fmt.Sprintf("ana:Ana Lima:%s", hashPassword(t, "suco456")),
	})
	require.NoError(t, err)

	service, err := NewService(users, testSecret, 0)
	require.NoError(t, err)
	return service
}

func TestParseUsers(t *testing.T) {
	hash := hashPassword(t, "senha")

	tests := []struct {
		name    string
		entries []string
		want    []*domain.User
		wantErr bool
	}{
		{
			name:    "entrada válida",
			entries: []string{fmt.Sprintf(" Rico :Ricardo Souza:%s", hash)},
			want:    []*domain.User{{Username: "rico", Name: "Ricardo Souza", PasswordHash: hash}},
		},
		{
			name:    "nome vazio usa o usuário",
			entries: []string{fmt.Sprintf("ana::%s", hash)},
			want:    []*domain.User{{Username: "ana", Name: "ana", PasswordHash: hash}},
		},
		{
			name:    "entradas vazias ignoradas",
			entries: []string{"", "  "},
			want:    []*domain.User{},
		},
		{
			name:    "formato inválido",
			entries: []string{"rico-sem-hash"},
			wantErr: true,
		},
		{
			name:    "hash inválido",
			entries: []string{"rico:Ricardo:senha-em-texto"},
			wantErr: true,
		},
		{
			name:    "usuário repetido",
			entries: []string{fmt.Sprintf("rico:A:%s", hash), fmt.Sprintf("RICO:B:%s", hash)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := ParseUsers(tt.entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUserEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, users)
		})
	}
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(nil, "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestService_Login(t *testing.T) {
	service := newTestService(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantCode string
	}{
		{name: "login com sucesso", username: "rico", password: "vinho123"},
		{name: "usuário com maiúsculas e espaços", username: "  RICO ", password: "vinho123"},
		{name: "senha incorreta", username: "rico", password: "errada", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "usuário desconhecido", username: "joao", password: "vinho123", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "senha vazia", username: "rico", password: "", wantErr: ErrMissingRequiredData, wantCode: apiErrors.ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Login(tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantCode, authErr.Code)
				assert.True(t, IsCredentialsError(err))
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, now.Add(DefaultTokenTTL), resp.ExpiresAt)
			assert.Equal(t, "Ricardo Souza", resp.User.Name)

			claims, err := service.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "rico", claims.Username)
			assert.Equal(t, "Ricardo Souza", claims.Name)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)
	issuedAt := time.Now()
	service.now = func() time.Time { return issuedAt }

	resp, err := service.Login("ana", "suco456")
	require.NoError(t, err)

	t.Run("token expirado", func(t *testing.T) {
		expired := *service
		expired.now = func() time.Time { return issuedAt.Add(DefaultTokenTTL + time.Minute) }

		_, err := expired.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsTokenError(err))
	})

	t.Run("assinatura de outra chave", func(t *testing.T) {
		other, err := NewService([]*domain.User{{Username: "ana", Name: "Ana", PasswordHash: "x"}}, "outra-chave", time.Hour)
		require.NoError(t, err)

		_, err = other.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("usuário removido da lista", func(t *testing.T) {
		withoutAna, err := NewService([]*domain.User{{Username: "rico", Name: "Ricardo", PasswordHash: "x"}}, testSecret, time.Hour)
		require.NoError(t, err)
		withoutAna.now = service.now

		_, err = withoutAna.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_GetUser(t *testing.T) {
	service := newTestService(t)

	user, err := service.GetUser("Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", user.Name)

	_, err = service.GetUser("joao")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
