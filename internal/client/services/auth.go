package services

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/repositories/metadata"
	"github.com/zerotask/zerotask/internal/common"
)

// AuthService manages the local passcode lifecycle: created once on first-run
// setup, checked on every login, only ever replaced wholesale by a re-setup.
//
// Login deliberately returns a bare boolean: the caller learns pass/fail and
// nothing about which part of the credential was wrong.
type AuthService struct {
	meta metadata.Repository
}

func NewAuthService(meta metadata.Repository) *AuthService {
	return &AuthService{meta: meta}
}

// IsSetup reports whether a passcode has been configured.
func (a *AuthService) IsSetup(ctx context.Context) (bool, error) {
	md, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	return md != nil && md.IsSetup, nil
}

// Setup derives a hash from the passcode and a fresh salt and persists the
// auth metadata, overwriting any previous setup.
func (a *AuthService) Setup(ctx context.Context, passcode string) error {
	salt := common.GenerateRandByteArray(16)

	md := models.AuthMetadata{
		PasscodeHash: hex.EncodeToString(deriveHash([]byte(passcode), salt)),
		Salt:         hex.EncodeToString(salt),
		IsSetup:      true,
	}

	data, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("failed to encode auth metadata: %w", err)
	}
	if err := a.meta.Set(ctx, metadata.KeyAuthMetadata, data); err != nil {
		return fmt.Errorf("failed to save auth metadata: %w", err)
	}
	return nil
}

// Login verifies the passcode against the stored hash in constant time.
// It returns false both for a wrong passcode and for a missing setup.
func (a *AuthService) Login(ctx context.Context, passcode string) (bool, error) {
	md, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	if md == nil || !md.IsSetup {
		return false, nil
	}

	salt, err := hex.DecodeString(md.Salt)
	if err != nil {
		return false, fmt.Errorf("corrupt auth metadata: %w", err)
	}
	stored, err := hex.DecodeString(md.PasscodeHash)
	if err != nil {
		return false, fmt.Errorf("corrupt auth metadata: %w", err)
	}

	candidate := deriveHash([]byte(passcode), salt)
	return subtle.ConstantTimeCompare(stored, candidate) == 1, nil
}

// ClearLocalData wipes the stored auth metadata, forcing a new setup.
func (a *AuthService) ClearLocalData(ctx context.Context) error {
	if err := a.meta.Delete(ctx, metadata.KeyAuthMetadata); err != nil {
		return fmt.Errorf("failed to clear auth metadata: %w", err)
	}
	return nil
}

func (a *AuthService) load(ctx context.Context) (*models.AuthMetadata, error) {
	data, err := a.meta.Get(ctx, metadata.KeyAuthMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth metadata: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var md models.AuthMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("corrupt auth metadata: %w", err)
	}
	return &md, nil
}

func deriveHash(passcode, salt []byte) []byte {
	return argon2.IDKey(passcode, salt, 1, 64*1024, 4, 32)
}
