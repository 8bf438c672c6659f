package uid_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/uid"
)

func TestNewIsUnique(t *testing.T) {
	a := uid.New()
	b := uid.New()
	require.NotEqual(t, a, b)
	require.False(t, a.IsNil())
}

func TestNilSentinel(t *testing.T) {
	require.True(t, uid.Nil.IsNil())
}

func TestJSONRoundTrip(t *testing.T) {
	id := uid.New()
	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded uid.UID
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, id, decoded)
}

func TestSet(t *testing.T) {
	a, b := uid.New(), uid.New()
	s := uid.NewSet(a)
	require.True(t, s.Contains(a))
	require.False(t, s.Contains(b))
	s.Add(b)
	require.True(t, s.Contains(b))
}
