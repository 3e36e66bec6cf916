package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDList_KeepsIntegralNumbers(t *testing.T) {
	var req SelectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"selected":[7.0, 1e3, -2, "7", 2.5, null, [1], {"id":1}, 9223372036854775807, 1e19]}`), &req))
	assert.Equal(t, IDList{7, 1000, -2, 9223372036854775807}, req.Selected)
}

func TestIDList_NonArrayIsEmpty(t *testing.T) {
	for _, body := range []string{`{"order":"1,2"}`, `{"order":5}`, `{"order":{"a":1}}`} {
		var req OrderRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Empty(t, req.Order, body)
	}

	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"order":null}`), &req))
	assert.Nil(t, req.Order)
}

func TestIDList_MarshalsAsArray(t *testing.T) {
	b, err := json.Marshal(OrderRequest{Order: []int64{3, 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":[3,1]}`, string(b))
}
