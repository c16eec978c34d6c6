package trackingrepo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestStageUpdateDTO_SchemaParses(t *testing.T) {
	s, err := schema.Parse(&StageUpdateDTO{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("Photos")
	require.NotNil(t, field)
	assert.Equal(t, schema.DataType("text"), field.DataType)

	_, err = schema.Parse(&TrackingDTO{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
}

func TestPhotoArray_ValueScan(t *testing.T) {
	tests := []struct {
		name   string
		photos PhotoArray
	}{
		{"nil", nil},
		{"urls", PhotoArray{"https://cdn/1.jpg", "https://cdn/a b,c.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.photos.Value()
			require.NoError(t, err)

			var got PhotoArray
			require.NoError(t, got.Scan(v))
			assert.Equal(t, tt.photos, got)
		})
	}
}

func TestPhotoArray_ScanArrayLiteral(t *testing.T) {
	var got PhotoArray
	require.NoError(t, got.Scan([]byte(`{a.jpg,"b c.jpg"}`)))
	assert.Equal(t, PhotoArray{"a.jpg", "b c.jpg"}, got)
}
