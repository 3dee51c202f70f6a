package idpfactory

import (
	"errors"

	"github.com/UncoreDigital/secure-place-api/idp"
	"github.com/UncoreDigital/secure-place-api/idp/scim"
	"github.com/UncoreDigital/secure-place-api/idp/supabase"
)

type FactoryConfig struct {
	ProviderType idp.ProviderType
	BaseURL      string

	// Supabase
	ServiceRoleKey string

	// SCIM
	ClientID     string
	ClientSecret string
	Scopes       []string
}

func NewIdentityProvider(cfg FactoryConfig) (idp.IdentityProvider, error) {
	switch cfg.ProviderType {
	case idp.ProviderSupabase:
		if cfg.ServiceRoleKey == "" {
			return nil, errors.New("supabase provider requires a service role key")
		}
		return supabase.NewClient(cfg.BaseURL, cfg.ServiceRoleKey), nil
	case idp.ProviderSCIM:
		if cfg.ClientID == "" || cfg.ClientSecret == "" {
			return nil, errors.New("scim provider requires client credentials")
		}
		return scim.NewClient(cfg.BaseURL, cfg.ClientID, cfg.ClientSecret, cfg.Scopes), nil
	default:
		return nil, errors.New("unsupported provider type")
	}
}
