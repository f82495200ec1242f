// Package labels translates canonical display strings for presentation.
// Translation only affects rendered output; records are never modified.
package labels

import (
	"fmt"
	"strings"
)

// Locale is a display language.
type Locale string

const (
	English    Locale = "en-US"
	Portuguese Locale = "pt-BR"
)

// ParseLocale accepts "en-US", "pt-BR" and their lower-case or underscore
// spellings. The empty string is English.
func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-")) {
	case "", "en", "en-us":
		return English, nil
	case "pt", "pt-br":
		return Portuguese, nil
	default:
		return "", fmt.Errorf("unsupported locale %q", s)
	}
}

// portuguese maps English headers and values to pt-BR.
var portuguese = map[string]string{
	// Headers
	"Subscription ID": "ID da Assinatura",
	"Request Type":    "Tipo de Requisição",
	"VM Type":         "Tipo de VM",
	"Region":          "Região",
	"Zone":            "Zona",
	"Cores":           "Núcleos",
	"Status":          "Status",
	"RDQuota":         "RDQuota",

	// Request types
	"Zonal Enablement":                   "Habilitação Zonal",
	"Region Enablement":                  "Habilitação Regional",
	"Region Enablement & Quota Increase": "Habilitação Regional & Aumento de Cota",
	"Quota Increase":                     "Aumento de Cota",
	"Region Limit Increase":              "Aumento de Limite Regional",
	"Reserved Instances":                 "Instâncias Reservadas",

	// Statuses
	"Approved":                  "Aprovado",
	"Fulfilled":                 "Atendido",
	"Backlogged":                "Pendente (Backlogged)",
	"Pending Customer Response": "Aguardando Resposta do Cliente",
	"Pending":                   "Pendente",

	"N/A": "N/A",
}

// Translate returns s in the given locale. Strings without a translation are
// returned unchanged.
func Translate(s string, locale Locale) string {
	if locale != Portuguese {
		return s
	}
	if t, ok := portuguese[s]; ok {
		return t
	}
	return s
}

// TranslateAll translates every element into a new slice.
func TranslateAll(values []string, locale Locale) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Translate(v, locale)
	}
	return out
}

// FileSuffix is the locale-specific tail of exported file names.
func FileSuffix(locale Locale) string {
	if locale == Portuguese {
		return "Dados_Cota_pt-BR"
	}
	return "Quota_Data_en-US"
}
