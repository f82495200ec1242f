package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Região", Translate("Region", Portuguese))
	assert.Equal(t, "Habilitação Zonal", Translate("Zonal Enablement", Portuguese))
	assert.Equal(t, "Aguardando Resposta do Cliente", Translate("Pending Customer Response", Portuguese))
	assert.Equal(t, "Standard_D4", Translate("Standard_D4", Portuguese))
	assert.Equal(t, "Region", Translate("Region", English))
}

func TestTranslateAll_DoesNotModifyInput(t *testing.T) {
	in := []string{"Zone", "Cores"}
	out := TranslateAll(in, Portuguese)
	assert.Equal(t, []string{"Zona", "Núcleos"}, out)
	assert.Equal(t, []string{"Zone", "Cores"}, in)
}

func TestParseLocale(t *testing.T) {
	for _, s := range []string{"", "en-US", "en_us", "EN"} {
		l, err := ParseLocale(s)
		require.NoError(t, err, s)
		assert.Equal(t, English, l)
	}

	l, err := ParseLocale("pt_BR")
	require.NoError(t, err)
	assert.Equal(t, Portuguese, l)

	_, err = ParseLocale("fr-FR")
	assert.Error(t, err)
}

func TestFileSuffix(t *testing.T) {
	assert.Equal(t, "Quota_Data_en-US", FileSuffix(English))
	assert.Equal(t, "Dados_Cota_pt-BR", FileSuffix(Portuguese))
}
