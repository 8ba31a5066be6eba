package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const placeholder = "/static/placeholder.webp"

func TestPresentedPhoto_UnsignedRightsHidePhoto(t *testing.T) {
	st := Student{PhotoURL: "https://cdn.example.com/ana.webp", ImageRights: "Não"}
	url, rights := st.PresentedPhoto(placeholder)
	assert.Equal(t, placeholder, url)
	assert.False(t, rights)
}

func TestPresentedPhoto_AbsentRightsCountAsUnsigned(t *testing.T) {
	st := Student{PhotoURL: "https://cdn.example.com/ana.webp"}
	url, rights := st.PresentedPhoto(placeholder)
	assert.Equal(t, placeholder, url)
	assert.False(t, rights)
}

func TestPresentedPhoto_SignedWithPhoto(t *testing.T) {
	st := Student{PhotoURL: "https://cdn.example.com/ana.webp", ImageRights: ImageRightsSigned}
	url, rights := st.PresentedPhoto(placeholder)
	assert.Equal(t, "https://cdn.example.com/ana.webp", url)
	assert.True(t, rights)
}

func TestPresentedPhoto_SignedWithoutPhoto(t *testing.T) {
	st := Student{ImageRights: ImageRightsSigned}
	url, rights := st.PresentedPhoto(placeholder)
	assert.Equal(t, placeholder, url)
	assert.True(t, rights)
}

func TestSnapshot_CoversEveryFieldSpec(t *testing.T) {
	snap := Student{}.Snapshot()
	for _, spec := range FieldSpecs {
		_, ok := snap[spec.Field]
		assert.True(t, ok, "field %q missing from snapshot", spec.Field)
	}
}
