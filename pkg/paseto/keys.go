package pasetotoken

import (
	"fmt"
	"strings"

	paseto "aidanwoods.dev/go-paseto"
)

type Mode string

const (
	ModeLocal  Mode = "local"  // v4.local, shared symmetric key
	ModePublic Mode = "public" // v4.public, identity service signs, API verifies
)

// Keys holds the material for one mode. In public mode Secret is only set on
// hosts that mint tokens (the `system token` command); the API verifies with
// Public alone.
type Keys struct {
	Mode Mode

	Symmetric *paseto.V4SymmetricKey
	Secret    *paseto.V4AsymmetricSecretKey
	Public    *paseto.V4AsymmetricPublicKey
}

// KeyStrings is the hex-encoded form read from config.
type KeyStrings struct {
	Mode         Mode
	SymmetricHex string
	SecretHex    string
	PublicHex    string
}

func LoadKeys(in KeyStrings) (Keys, error) {
	switch in.Mode {
	case ModeLocal:
		return loadLocal(strings.TrimSpace(in.SymmetricHex))
	case ModePublic:
		return loadPublic(strings.TrimSpace(in.SecretHex), strings.TrimSpace(in.PublicHex))
	default:
		return Keys{}, fmt.Errorf("%w: unknown mode %q, want local or public", ErrConfig, in.Mode)
	}
}

func loadLocal(hexKey string) (Keys, error) {
	if hexKey == "" {
		return Keys{}, fmt.Errorf("%w: local mode needs local_key_hex", ErrConfig)
	}
	k, err := paseto.V4SymmetricKeyFromHex(hexKey)
	if err != nil {
		return Keys{}, fmt.Errorf("%w: local_key_hex: %w", ErrConfig, err)
	}
	return Keys{Mode: ModeLocal, Symmetric: &k}, nil
}

// loadPublic derives the public key from the secret when only the secret is
// configured. An explicit public key wins.
func loadPublic(secretHex, publicHex string) (Keys, error) {
	if secretHex == "" && publicHex == "" {
		return Keys{}, fmt.Errorf("%w: public mode needs secret_key_hex or public_key_hex", ErrConfig)
	}

	keys := Keys{Mode: ModePublic}
	if secretHex != "" {
		sk, err := paseto.NewV4AsymmetricSecretKeyFromHex(secretHex)
		if err != nil {
			return Keys{}, fmt.Errorf("%w: secret_key_hex: %w", ErrConfig, err)
		}
		pk := sk.Public()
		keys.Secret, keys.Public = &sk, &pk
	}
	if publicHex != "" {
		pk, err := paseto.NewV4AsymmetricPublicKeyFromHex(publicHex)
		if err != nil {
			return Keys{}, fmt.Errorf("%w: public_key_hex: %w", ErrConfig, err)
		}
		keys.Public = &pk
	}
	return keys, nil
}
