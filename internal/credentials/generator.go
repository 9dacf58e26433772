package credentials

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/sethvargo/go-password/password"
)

// Charset profiles selectable via configuration.
const (
	// ProfileStandard keeps secret keys to base62, matching what most
	// S3-compatible stores accept without escaping headaches.
	ProfileStandard = "standard"
	// ProfileExtended adds shell-safe symbols to secret keys.
	ProfileExtended = "extended"
)

const (
	// accessKeyCharset matches the MinIO access-key convention:
	// fixed-width uppercase alphanumeric identifiers.
	accessKeyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	secretKeyBase62   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	secretKeyExtended = secretKeyBase62 + "+/=-_"
)

// ErrEntropyUnavailable indicates the secure random source failed. This is
// an environment defect; callers must treat it as fatal and never retry.
var ErrEntropyUnavailable = errors.New("secure random source unavailable")

// Credential is a freshly generated secret value together with the metadata
// describing how it was produced.
type Credential struct {
	Value       string
	GeneratedAt time.Time
	Length      int
	Charset     string
}

// Profile configures the lengths and charsets of generated credentials.
// Zero values are replaced with defaults by NewGenerator.
type Profile struct {
	AdminPasswordLength int
	AccessKeyLength     int
	SecretKeyLength     int
	CharsetProfile      string
}

// DefaultProfile returns the stock credential profile: a 24-character admin
// password, a 20-character access key and a 40-character secret key.
func DefaultProfile() Profile {
	return Profile{
		AdminPasswordLength: 24,
		AccessKeyLength:     20,
		SecretKeyLength:     40,
		CharsetProfile:      ProfileStandard,
	}
}

// Generator produces credentials according to a Profile.
type Generator struct {
	profile Profile
	pw      *password.Generator
}

// NewGenerator creates a Generator for the given profile. Lengths below the
// minimums required for the respective credential class are rejected.
func NewGenerator(profile Profile) (*Generator, error) {
	def := DefaultProfile()
	if profile.AdminPasswordLength == 0 {
		profile.AdminPasswordLength = def.AdminPasswordLength
	}
	if profile.AccessKeyLength == 0 {
		profile.AccessKeyLength = def.AccessKeyLength
	}
	if profile.SecretKeyLength == 0 {
		profile.SecretKeyLength = def.SecretKeyLength
	}
	if profile.CharsetProfile == "" {
		profile.CharsetProfile = def.CharsetProfile
	}

	if profile.AdminPasswordLength < 20 {
		return nil, fmt.Errorf("admin password length %d below minimum of 20", profile.AdminPasswordLength)
	}
	if profile.AccessKeyLength < 16 {
		return nil, fmt.Errorf("access key length %d below minimum of 16", profile.AccessKeyLength)
	}
	if profile.SecretKeyLength < 40 {
		return nil, fmt.Errorf("secret key length %d below minimum of 40", profile.SecretKeyLength)
	}
	if profile.CharsetProfile != ProfileStandard && profile.CharsetProfile != ProfileExtended {
		return nil, fmt.Errorf("unknown charset profile %q", profile.CharsetProfile)
	}

	pw, err := password.NewGenerator(nil)
	if err != nil {
		return nil, fmt.Errorf("initialize password generator: %w", err)
	}

	return &Generator{profile: profile, pw: pw}, nil
}

// AdminPassword generates the admin account password: mixed-case
// alphanumeric plus symbols.
func (g *Generator) AdminPassword() (Credential, error) {
	n := g.profile.AdminPasswordLength
	value, err := g.pw.Generate(n, n/4, n/8, false, true)
	if err != nil {
		return Credential{}, fmt.Errorf("generate admin password: %w: %v", ErrEntropyUnavailable, err)
	}
	return Credential{
		Value:       value,
		GeneratedAt: time.Now(),
		Length:      n,
		Charset:     "alphanumeric+symbols",
	}, nil
}

// AccessKey generates a service-account access-key identifier.
func (g *Generator) AccessKey() (Credential, error) {
	return g.fromCharset(g.profile.AccessKeyLength, accessKeyCharset, "uppercase+digits")
}

// SecretKey generates a service-account secret key.
func (g *Generator) SecretKey() (Credential, error) {
	charset, label := secretKeyBase62, "base62"
	if g.profile.CharsetProfile == ProfileExtended {
		charset, label = secretKeyExtended, "base62+symbols"
	}
	return g.fromCharset(g.profile.SecretKeyLength, charset, label)
}

func (g *Generator) fromCharset(n int, charset, label string) (Credential, error) {
	value, err := randomString(n, charset)
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		Value:       value,
		GeneratedAt: time.Now(),
		Length:      n,
		Charset:     label,
	}, nil
}

// randomString draws n characters uniformly from charset using crypto/rand.
func randomString(n int, charset string) (string, error) {
	max := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
