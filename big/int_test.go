package big

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testJSON(t *testing.T, bigint *Int) *Int {
	bts, err := json.Marshal(bigint)
	require.NoError(t, err)
	unmarshaled := new(Int)
	require.NoError(t, json.Unmarshal(bts, unmarshaled))
	require.Zero(t, bigint.Cmp(unmarshaled))
	return unmarshaled
}

func testCBOR(t *testing.T, bigint *Int) *Int {
	bts, err := bigint.MarshalCBOR()
	require.NoError(t, err)
	unmarshaled := new(Int)
	require.NoError(t, unmarshaled.UnmarshalCBOR(bts))
	require.Zero(t, bigint.Cmp(unmarshaled))
	return unmarshaled
}

func TestInt(t *testing.T) {
	var i int64 = 42
	bigint := NewInt(i)
	require.Equal(t, i, testJSON(t, bigint).Int64())
	require.Equal(t, i, testCBOR(t, bigint).Int64())
}

func TestZero(t *testing.T) {
	bigint := NewInt(0)
	require.Zero(t, testJSON(t, bigint).Sign())
	require.Zero(t, testCBOR(t, bigint).Sign())
}

func TestBigInt(t *testing.T) {
	s := "8931748931759284679376938475395713602744853768923750102"
	bigint := MustParse(s)
	require.Equal(t, s, testJSON(t, bigint).String())
	require.Equal(t, s, testCBOR(t, bigint).String())
}

func TestJSONIsDecimal(t *testing.T) {
	bts, err := json.Marshal(struct{ N *Int }{NewInt(134041)})
	require.NoError(t, err)
	require.Equal(t, `{"N":"134041"}`, string(bts))
}

func TestUnmarshalBareNumber(t *testing.T) {
	var v struct{ N *Int }
	require.NoError(t, json.Unmarshal([]byte(`{"N": 311431}`), &v))
	require.Equal(t, int64(311431), v.N.Int64())

	require.Error(t, json.Unmarshal([]byte(`{"N": "0xzz"}`), &v))
}

func TestYAML(t *testing.T) {
	var v struct {
		N *Int `yaml:"n"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("n: 134041\n"), &v))
	require.Equal(t, int64(134041), v.N.Int64())
}

func TestNegative(t *testing.T) {
	bigint := NewInt(-42)
	require.Equal(t, int64(-42), testJSON(t, bigint).Int64())
	_, err := bigint.MarshalCBOR()
	require.Error(t, err)
}

func TestMustParse(t *testing.T) {
	require.Panics(t, func() { MustParse("twelve") })
}
