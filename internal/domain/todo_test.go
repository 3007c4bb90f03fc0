package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTodo_TableName(t *testing.T) {
	require.Equal(t, "todo", Todo{}.TableName())
}

func TestTodo_JSONShape(t *testing.T) {
	b, err := json.Marshal(Todo{ID: 1, Content: "buy milk"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"content":"buy milk"}`, string(b))
}

func TestErrorKinds_Wrapping(t *testing.T) {
	err := fmt.Errorf("update todo 7: %w", ErrNotFound)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrAmbiguousResult)
}
