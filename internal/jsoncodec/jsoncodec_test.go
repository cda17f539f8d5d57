package jsoncodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Focal float64 `json:"focal"`
}

func TestMarshalUnmarshal(t *testing.T) {
	in := sample{Name: "cam0", Focal: 500.5}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestEncodeDecodeStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample{Name: "cam1"}))

	var out sample
	require.NoError(t, Decode(&buf, &out))
	assert.Equal(t, "cam1", out.Name)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var out sample
	assert.Error(t, Unmarshal([]byte("{nope"), &out))
}
