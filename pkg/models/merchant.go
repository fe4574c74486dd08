package models

// MerchantConfig is the shop's display identity, consumed by receipts and
// exports. It lives under its own storage key, independent of the debts.
type MerchantConfig struct {
	Name          string `json:"name" yaml:"name"`
	Phone         string `json:"phone" yaml:"phone"`
	WhatsApp      string `json:"whatsapp" yaml:"whatsapp"`
	Logo          string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Address       string `json:"address,omitempty" yaml:"address,omitempty"`
	BankilyNumber string `json:"bankilyNumber,omitempty" yaml:"bankily_number,omitempty"`
}
