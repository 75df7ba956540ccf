package settings

import "context"

// Document is the portal settings document. Keys are free-form; the
// frontend owns the schema and the backend only stores and merges.
type Document map[string]interface{}

// Notification is an entry appended to the settings notifications list
type Notification struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Defaults returns the built-in settings every portal starts with. Saved
// values are overlaid per top-level key, so a key absent from the stored
// document always falls back to these.
func Defaults() Document {
	return Document{
		"theme":         "dark",
		"site_title":    "Mazzel Works Portal",
		"site_subtitle": "Profesyonel iş yönetimi, teklif hazırlama ve maliyet analizi için tek platform",
		"show_weather":  true,
		"show_currency": true,
		"show_news":     true,
		"show_clock":    true,
		"weather_city":  "Istanbul",
		"modules": []interface{}{
			module("teklif", "Teklif Hazırla", "fa-file-invoice-dollar", "/teklif/", "active"),
			module("mail", "Mazzel Mail", "fa-envelope", "/mail/", "dev"),
			module("maliyet", "Maliyet Hesapla", "fa-calculator", "/maliyet/", "soon"),
			module("tokidb", "TOKI DB", "fa-database", "/tokidb/", "active"),
			module("musteriler", "Müşteriler", "fa-users", "/musteriler/", "soon"),
			module("raporlar", "Raporlar", "fa-chart-bar", "/raporlar/", "soon"),
			module("ayarlar", "Ayarlar", "fa-cog", "/settings", "active"),
		},
		"nav_links": []interface{}{
			navLink("Ana Sayfa", "/"),
			navLink("Hizmetler", "/hizmetler"),
			navLink("Referanslar", "/referanslar"),
			navLink("İletişim", "/iletisim"),
		},
		"notifications": []interface{}{},
	}
}

func module(id, name, icon, url, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":      id,
		"name":    name,
		"icon":    icon,
		"url":     url,
		"status":  status,
		"enabled": true,
	}
}

func navLink(name, url string) map[string]interface{} {
	return map[string]interface{}{
		"name":    name,
		"url":     url,
		"enabled": true,
	}
}

// Merge overlays the stored document onto the defaults, top-level keys only
func Merge(stored Document) Document {
	merged := Defaults()
	for key, value := range stored {
		merged[key] = value
	}
	return merged
}

// Repository defines the interface for the settings document store
type Repository interface {
	// Load returns the stored document, or an empty one when nothing
	// has been saved yet.
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}
