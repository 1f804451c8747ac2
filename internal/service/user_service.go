package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/internal/dto"
	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// UserService learner directory operations
type UserService interface {
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.UserPublicResponse, error)
	UpdateWhatsapp(ctx context.Context, req *dto.UpdateWhatsappRequest) error
	ParseRosterFile(reader io.Reader) ([]dto.ImportUserRow, error)
	ImportRoster(ctx context.Context, rows []dto.ImportUserRow) (*dto.ImportUserResponse, error)
}

type userService struct {
	repo      *repository.Repository
	validator *validate.Validator
	logger    *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, v *validate.Validator, logger *zap.Logger) UserService {
	return &userService{repo: repo, validator: v, logger: logger}
}

// ────────────────────── VerifyEmail ──────────────────────

func (s *userService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.UserPublicResponse, error) {
	email := model.NormalizeEmail(req.Email)
	if err := s.validator.Var(email, "required,email,max=255"); err != nil {
		return nil, &ValidationError{Details: "email must be a valid email address"}
	}

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, storageError(err)
	}

	return toUserPublicResponse(user), nil
}

// ────────────────────── UpdateWhatsapp ──────────────────────

func (s *userService) UpdateWhatsapp(ctx context.Context, req *dto.UpdateWhatsappRequest) error {
	req.WhatsappNumber = strings.TrimSpace(req.WhatsappNumber)
	if err := s.validator.Struct(req); err != nil {
		return &ValidationError{Details: s.validator.Messages(err)}
	}

	if _, err := s.repo.User.UpdateWhatsappNumber(ctx, req.UserID, req.WhatsappNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("update whatsapp number failed", zap.String("user_id", req.UserID), zap.Error(err))
		return storageError(err)
	}
	return nil
}

// ────────────────────── ParseRosterFile ──────────────────────

const maxImportRows = 5000

var (
	ErrImportNoData      = errors.New("roster has no data rows (the first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("roster exceeds %d rows", maxImportRows)
	ErrImportBadHeader   = errors.New("roster header must contain name and email columns")
)

// ParseRosterFile reads the first sheet of an xlsx roster.
func (s *userService) ParseRosterFile(reader io.Reader) ([]dto.ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read roster sheet: %w", err)
	}
	if len(sheetRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseRosterHeader(sheetRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	cell := func(row []string, key string) string {
		idx := colIndex[key]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rows []dto.ImportUserRow
	for i := 1; i < len(sheetRows); i++ {
		item := dto.ImportUserRow{
			Row:            i + 1,
			Name:           cell(sheetRows[i], "name"),
			Email:          cell(sheetRows[i], "email"),
			WhatsappNumber: cell(sheetRows[i], "whatsapp"),
		}
		if item.Name == "" && item.Email == "" && item.WhatsappNumber == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

func parseRosterHeader(header []string) map[string]int {
	idx := map[string]int{"name": -1, "email": -1, "whatsapp": -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "full name":
			idx["name"] = i
		case "email", "e-mail":
			idx["email"] = i
		case "whatsapp", "whatsapp number", "phone":
			idx["whatsapp"] = i
		}
	}
	return idx
}

// ────────────────────── ImportRoster ──────────────────────

func (s *userService) ImportRoster(ctx context.Context, rows []dto.ImportUserRow) (*dto.ImportUserResponse, error) {
	resp := &dto.ImportUserResponse{Total: len(rows)}
	seen := make(map[string]int, len(rows))

	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportUserError{Row: row, Reason: reason})
	}

	for _, row := range rows {
		email := model.NormalizeEmail(row.Email)
		switch {
		case row.Name == "" || email == "":
			fail(row.Row, "name and email are required")
			continue
		case s.validator.Var(email, "email") != nil:
			fail(row.Row, fmt.Sprintf("invalid email: %s", row.Email))
			continue
		case row.WhatsappNumber != "" && !validate.IsBDMobile(row.WhatsappNumber):
			fail(row.Row, fmt.Sprintf("invalid whatsapp number: %s", row.WhatsappNumber))
			continue
		}
		if first, dup := seen[email]; dup {
			fail(row.Row, fmt.Sprintf("email repeats row %d", first))
			continue
		}
		seen[email] = row.Row

		user := &model.User{Name: row.Name, Email: email}
		if row.WhatsappNumber != "" {
			number := row.WhatsappNumber
			user.WhatsappNumber = &number
		}

		created, err := s.repo.User.Upsert(ctx, user)
		if err != nil {
			s.logger.Error("import roster row failed", zap.Int("row", row.Row), zap.Error(err))
			if ctx.Err() != nil {
				return nil, storageError(err)
			}
			fail(row.Row, "storage error")
			continue
		}
		if created {
			resp.Created++
		} else {
			resp.Updated++
		}
	}

	s.logger.Info("roster imported",
		zap.Int("total", resp.Total),
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func toUserPublicResponse(u *model.User) *dto.UserPublicResponse {
	resp := &dto.UserPublicResponse{
		ID:          u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		HasWhatsapp: u.HasWhatsapp(),
	}
	if resp.HasWhatsapp {
		number := *u.WhatsappNumber
		resp.WhatsappNumber = &number
	}
	return resp
}
