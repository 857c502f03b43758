package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reefet/reefet-api/internal/application/dto"
	"github.com/reefet/reefet-api/internal/application/validation"
	"github.com/reefet/reefet-api/internal/domain"
	"github.com/reefet/reefet-api/internal/domain/entity"
	"github.com/reefet/reefet-api/internal/domain/repository"
	"github.com/reefet/reefet-api/pkg/jwt"
)

// dummyHash se compara cuando el email no existe para que ambos fallos
// de login tengan la misma forma y un coste similar.
var dummyHash = mustHash("reefet-dummy-password")

func mustHash(pw string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}

// AuthUseCase servicio de identidad y tokens: registro, login y verificación.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	depotRepo   repository.DepotRepository
	signer      *jwt.Signer
	validate    *validation.Validator
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	depotRepo repository.DepotRepository,
	signer *jwt.Signer,
	validate *validation.Validator,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		depotRepo:   depotRepo,
		signer:      signer,
		validate:    validate,
		now:         time.Now,
	}
}

// Register crea un usuario con el password hasheado con bcrypt (salt aleatorio por hash).
// Devuelve ErrConflict si el email ya existe, ErrNotFound si la empresa o algún depósito
// no existen y ErrValidation si los datos no son coherentes.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserSummary, error) {
	in.Email = normalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if !in.IsAdmin && (in.CompanyID == nil || *in.CompanyID == "") {
		return nil, fmt.Errorf("%w: companyId es requerido para usuarios no administradores", domain.ErrValidation)
	}

	var company *entity.Company
	if in.CompanyID != nil && *in.CompanyID != "" {
		c, err := uc.companyRepo.GetByID(ctx, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: no existe la empresa %s", domain.ErrNotFound, *in.CompanyID)
		}
		company = c
	}

	depotIDs := dedupe(in.DepotIDs)
	depots, err := uc.depotRepo.GetByIDs(ctx, depotIDs)
	if err != nil {
		return nil, err
	}
	if len(depots) != len(depotIDs) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, missingDepots(depotIDs, depots))
	}
	if !in.IsAdmin {
		for _, d := range depots {
			if d.CompanyID != company.ID {
				return nil, fmt.Errorf("%w: el depósito %s no pertenece a la empresa del usuario", domain.ErrValidation, d.ID)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	name := in.DisplayName
	if name == "" {
		name = entity.DefaultDisplayName
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  name,
		IsAdmin:      in.IsAdmin,
		DepotIDs:     depotIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if company != nil {
		user.CompanyID = &company.ID
	}
	// La unicidad del email la garantiza el índice único del store.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserSummary(user, company, depots), nil
}

// Login verifica email/password y emite un token con el alcance del usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(in.Password)); err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}

	var company *entity.Company
	if user.CompanyID != nil {
		company, err = uc.companyRepo.GetByID(ctx, *user.CompanyID)
		if err != nil {
			return nil, err
		}
	}
	depots, err := uc.depotRepo.GetByIDs(ctx, user.DepotIDs)
	if err != nil {
		return nil, err
	}

	summary := toUserSummary(user, company, depots)
	token, err := uc.signer.Generate(jwt.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CompanyID: summary.CompanyID,
		DepotIDs:  summary.DepotIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *summary}, nil
}

// Verify valida firma y expiración y devuelve los claims tal cual fueron emitidos.
// Todos los fallos colapsan en ErrUnauthorized.
func (uc *AuthUseCase) Verify(token string) (*entity.Principal, error) {
	claims, err := uc.signer.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Principal{
		UserID:    claims.UserID,
		Email:     claims.Email,
		IsAdmin:   claims.IsAdmin,
		CompanyID: claims.CompanyID,
		DepotIDs:  claims.DepotIDs,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingDepots(want []string, found []*entity.Depot) string {
	have := make(map[string]struct{}, len(found))
	for _, d := range found {
		have[d.ID] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return "no existen los depósitos " + strings.Join(missing, ", ")
}

// toUserSummary proyecta el usuario sin hash. Los depósitos que ya no existen se omiten.
func toUserSummary(u *entity.User, company *entity.Company, depots []*entity.Depot) *dto.UserSummary {
	out := &dto.UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		DepotIDs:    make([]string, 0, len(depots)),
	}
	if company != nil {
		out.CompanyID = &company.ID
		out.CompanyName = &company.Name
	}
	for _, d := range depots {
		out.DepotIDs = append(out.DepotIDs, d.ID)
		out.DepotNames = append(out.DepotNames, d.Name)
	}
	return out
}
