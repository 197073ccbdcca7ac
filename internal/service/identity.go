package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/store"
	"dinehub/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minPasswordLength = 6
	// bcrypt 只接受 72 bytes 以內的輸入
	maxPasswordBytes = 72
)

// CreateUserInput 建立帳號的輸入；CustomerID 與 CreditCardNumber 只在 customer 類型時使用
type CreateUserInput struct {
	Name             string
	Phone            string
	Email            string
	Password         string
	UserType         string
	CustomerID       string
	CreditCardNumber string
}

// Profile 對外回傳的使用者資料，customer 類型會帶上綁定的信用卡號
type Profile struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email"`
	UserType         model.UserType `json:"user_type"`
	SessionExpiry    *time.Time     `json:"session_expiry,omitempty"`
	CustomerID       *uuid.UUID     `json:"customer_id,omitempty"`
	CreditCardNumber *string        `json:"credit_card_number,omitempty"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   Profile
}

type IdentityService struct {
	gw     store.Gateway
	auth   AuthConfig
	logger *zap.Logger
}

func NewIdentityService(gw store.Gateway, auth AuthConfig, logger *zap.Logger) *IdentityService {
	return &IdentityService{gw: gw, auth: auth, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCreateUser(in CreateUserInput) error {
	switch {
	case utils.IsEmpty(in.Name):
		return validationError("name", "Name cannot be empty")
	case utils.IsEmpty(in.Phone):
		return validationError("phone", "Phone number is required")
	case utils.IsEmpty(in.Email):
		return validationError("email", "Email is required")
	case utils.IsEmpty(in.Password):
		return validationError("password", "Password is required")
	case !utils.MinLength(in.Password, minPasswordLength):
		return validationError("password", "Password must be at least 6 characters")
	case len(in.Password) > maxPasswordBytes:
		return validationError("password", "Password must be at most 72 bytes")
	case !utils.IsEmail(in.Email):
		return validationError("email", "Email is invalid")
	case !model.UserType(in.UserType).Valid():
		return validationError("userType", "userType must be one of admin, customer")
	}
	if model.UserType(in.UserType) == model.UserTypeCustomer && utils.IsEmpty(in.CreditCardNumber) {
		return validationError("creditCardNumber", "Credit card number is required for customer type")
	}
	return nil
}

// CreateUser 建立帳號。customer 類型會在同一交易內建立或綁定 Customer。
func (s *IdentityService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateCreateUser(in); err != nil {
		return nil, err
	}
	userType := model.UserType(in.UserType)

	var linkID *uuid.UUID
	if userType == model.UserTypeCustomer && !utils.IsEmpty(in.CustomerID) {
		id, err := uuid.Parse(strings.TrimSpace(in.CustomerID))
		if err != nil {
			return nil, validationError("customerID", "customerID must be a valid UUID")
		}
		linkID = &id
	}

	if _, err := s.gw.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, &Error{Kind: KindDuplicate, Field: "email", Message: "User with similar details already exists"}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, persistenceError("Failed to create user", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, internalError("Failed to hash password", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     userType,
	}

	err = s.gw.WithTx(ctx, func(tx store.Gateway) error {
		if user.IsCustomer() {
			cust, err := createLinkedCustomer(ctx, tx, linkID, in)
			if err != nil {
				return err
			}
			card := cust.CreditCardNumber
			user.CustomerID = &cust.ID
			user.CreditCardNumber = &card
		} else {
			user.CustomerID = nil
			user.CreditCardNumber = nil
		}
		return tx.CreateUser(ctx, user)
	})
	var se *Error
	if errors.As(err, &se) {
		return nil, se
	}
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &Error{Kind: KindDuplicate, Field: "email", Message: "User with similar details already exists", Err: err}
		}
		s.logger.Error("create user failed", zap.String("email", user.Email), zap.Error(err))
		return nil, persistenceError("Failed to create user", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("user_type", string(user.UserType)))
	return user, nil
}

// createLinkedCustomer 以呼叫端資料建立 Customer；指定的 id 已存在時視為重複，不綁定既有資料
func createLinkedCustomer(ctx context.Context, tx store.Gateway, id *uuid.UUID, in CreateUserInput) (*model.Customer, error) {
	if id != nil {
		_, err := tx.GetCustomerByID(ctx, *id)
		if err == nil {
			return nil, customerIDTaken(nil)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	cust := &model.Customer{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(in.Name),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            in.Email,
		CreditCardNumber: strings.TrimSpace(in.CreditCardNumber),
	}
	if id != nil {
		cust.ID = *id
	}
	if err := tx.CreateCustomer(ctx, cust); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, customerIDTaken(err)
		}
		return nil, err
	}
	return cust, nil
}

func customerIDTaken(err error) *Error {
	return &Error{Kind: KindDuplicate, Field: "customerID", Message: "Customer with similar details already exists", Err: err}
}

// Login 驗證帳密並發行新的 session（覆寫舊的）與 JWT。
// 找不到帳號與密碼錯誤目前回傳不同訊息。
func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if utils.IsEmpty(email) {
		return nil, validationError("email", "Email is required")
	}
	if utils.IsEmpty(password) {
		return nil, validationError("password", "Password is required")
	}

	user, err := s.gw.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("User not found")
		}
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, persistenceError("Failed to log in", err)
	}

	ok, err := PasswordMatches(user.PasswordHash, password)
	if err != nil {
		s.logger.Error("stored password hash unreadable", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, internalError("Failed to log in", err)
	}
	if !ok {
		return nil, &Error{Kind: KindInvalidCredentials, Field: "password", Message: "Invalid password"}
	}

	session, expiry, err := IssueSession(s.auth.SessionTTL)
	if err != nil {
		return nil, internalError("Failed to issue session", err)
	}
	if err := s.gw.UpdateUserSession(ctx, user.ID, session, expiry); err != nil {
		s.logger.Error("persist session failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, persistenceError("Failed to log in", err)
	}

	user, err = s.gw.GetUserByID(ctx, user.ID)
	if err != nil {
		s.logger.Error("reload user failed", zap.Error(err))
		return nil, persistenceError("Failed to log in", err)
	}

	token, err := IssueAccessToken(*user, s.auth.Secret, s.auth.TokenTTL)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, internalError("Failed to issue token", err)
	}

	profile, err := s.profileOf(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiry, Profile: *profile}, nil
}

// Profile 取得使用者公開資料
func (s *IdentityService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.gw.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, persistenceError("Failed to fetch user", err)
	}
	return s.profileOf(ctx, user)
}

func (s *IdentityService) profileOf(ctx context.Context, user *model.User) (*Profile, error) {
	p := &Profile{
		ID:            user.ID,
		Name:          user.Name,
		Phone:         user.Phone,
		Email:         user.Email,
		UserType:      user.UserType,
		SessionExpiry: user.SessionExpiry,
	}
	if !user.IsCustomer() || user.CustomerID == nil {
		return p, nil
	}

	cust, err := s.gw.GetCustomerByID(ctx, *user.CustomerID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Warn("linked customer missing", zap.String("customer_id", user.CustomerID.String()))
		return p, nil
	case err != nil:
		return nil, persistenceError("Failed to fetch customer details", err)
	}
	card := cust.CreditCardNumber
	p.CustomerID = &cust.ID
	p.CreditCardNumber = &card
	return p, nil
}

// PurgeExpiredSessions 清掉已過期的 session 欄位
func (s *IdentityService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.gw.ClearExpiredSessions(ctx, timeNow())
	if err != nil {
		s.logger.Error("purge expired sessions failed", zap.Error(err))
		return 0, persistenceError("Failed to purge sessions", err)
	}
	if n > 0 {
		s.logger.Info("expired sessions purged", zap.Int64("count", n))
	}
	return n, nil
}
