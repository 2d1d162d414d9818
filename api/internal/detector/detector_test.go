package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_DetectISO(t *testing.T) {
	d := New()

	iso, ok := d.DetectISO("El sábado pasado celebré mi cumpleaños con mi familia y comimos pastel de chocolate.")
	assert.True(t, ok)
	assert.Equal(t, "es", iso)

	iso, ok = d.DetectISO("Last Saturday I celebrated my birthday with my family and we ate chocolate cake.")
	assert.True(t, ok)
	assert.Equal(t, "en", iso)
}

func TestDetector_Empty(t *testing.T) {
	iso, ok := New().DetectISO("")
	assert.False(t, ok)
	assert.Empty(t, iso)
}
