package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reefet/reefet-api/internal/application/auth"
	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/infrastructure/memory"
	"github.com/reefet/reefet-api/pkg/jwt"
)

const (
	companyID  = "1c0a6f2e-5b7d-4e3a-9c1b-0d2e3f4a5b6c"
	depot1     = "2d1b7e3f-6c8e-4f4b-8d2c-1e3f4a5b6c7d"
	depot2     = "3e2c8f4a-7d9f-4a5c-9e3d-2f4a5b6c7d8e"
	depotAjeno = "4f3d9a5b-8eaf-4b6d-8f4e-3a5b6c7d8e9f"
)

type env struct {
	store *memory.Store
	uc    *auth.AuthUseCase
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	depots := memory.NewDepotRepository(s)
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: companyID, Name: "Frigo SA", TaxID: "76.1"}))
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "otra", Name: "Otra", TaxID: "76.2"}))
	require.NoError(t, depots.Create(ctx, &entity.Depot{ID: depot1, CompanyID: companyID, Name: "Norte", NodeIdentifier: "N"}))
	require.NoError(t, depots.Create(ctx, &entity.Depot{ID: depot2, CompanyID: companyID, Name: "Sur", NodeIdentifier: "S"}))
	require.NoError(t, depots.Create(ctx, &entity.Depot{ID: depotAjeno, CompanyID: "otra", Name: "Ajeno", NodeIdentifier: "A"}))

	signer, err := jwt.NewSigner("test-secret", "reefet-test", 24*time.Hour)
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(memory.NewUserRepository(s), companies, depots, signer, validation.New())
	return env{store: s, uc: uc}
}

func strPtr(s string) *string { return &s }

func TestRegister_OKSinHashEnRespuesta(t *testing.T) {
	e := newEnv(t)
	out, err := e.uc.Register(context.Background(), dto.RegisterRequest{
		Email:     "Ana@Example.com ",
		Password:  "password-seguro",
		CompanyID: strPtr(companyID),
		DepotIDs:  []string{depot1, depot1, depot2},
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.DefaultDisplayName, out.DisplayName)
	assert.ElementsMatch(t, []string{depot1, depot2}, out.DepotIDs)

	stored, err := memory.NewUserRepository(e.store).GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password-seguro", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado_Conflict(t *testing.T) {
	e := newEnv(t)
	in := dto.RegisterRequest{Email: "ana@example.com", Password: "password-seguro", IsAdmin: true}
	_, err := e.uc.Register(context.Background(), in)
	require.NoError(t, err)

	in.Password = "otro-password"
	_, err = e.uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Register(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "password-seguro"})
	assert.ErrorIs(t, err, domain.ErrValidation, "no admin sin empresa")

	_, err = e.uc.Register(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corto", IsAdmin: true})
	assert.ErrorIs(t, err, domain.ErrValidation, "password corto")

	_, err = e.uc.Register(ctx, dto.RegisterRequest{
		Email: "a@b.co", Password: "password-seguro", CompanyID: strPtr("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "empresa inexistente")

	_, err = e.uc.Register(ctx, dto.RegisterRequest{
		Email: "a@b.co", Password: "password-seguro", CompanyID: strPtr(companyID),
		DepotIDs: []string{"9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "depósito inexistente")

	_, err = e.uc.Register(ctx, dto.RegisterRequest{
		Email: "a@b.co", Password: "password-seguro", CompanyID: strPtr(companyID),
		DepotIDs: []string{depotAjeno},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "depósito de otra empresa")
}

func TestLogin_EmiteTokenConAlcance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	reg, err := e.uc.Register(ctx, dto.RegisterRequest{
		Email: "ana@example.com", Password: "password-seguro", DisplayName: "Ana",
		CompanyID: strPtr(companyID), DepotIDs: []string{depot1},
	})
	require.NoError(t, err)

	out, err := e.uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "password-seguro"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "Ana", out.User.DisplayName)
	require.NotNil(t, out.User.CompanyName)
	assert.Equal(t, "Frigo SA", *out.User.CompanyName)
	assert.Equal(t, []string{"Norte"}, out.User.DepotNames)

	p, err := e.uc.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.Principal{
		UserID:    reg.ID,
		Email:     "ana@example.com",
		IsAdmin:   false,
		CompanyID: strPtr(companyID),
		DepotIDs:  []string{depot1},
	}, *p)
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "password-seguro", IsAdmin: true})
	require.NoError(t, err)

	_, errPw := e.uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecto"})
	_, errEmail := e.uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "incorrecto"})

	assert.ErrorIs(t, errPw, domain.ErrUnauthorized)
	assert.ErrorIs(t, errEmail, domain.ErrUnauthorized)
	assert.Equal(t, errPw.Error(), errEmail.Error())
}

func TestVerify_TokenInvalido(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Verify("no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = e.uc.Verify("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
