// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package requestutil_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/platform/constants"
	requestutil "github.com/dvhoang/vietsu/internal/platform/request"
	"github.com/dvhoang/vietsu/internal/platform/validate"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Nhà Trần"}`))

		var target payload
		require.NoError(t, requestutil.DecodeJSON(request, &target))
		assert.Equal(t, "Nhà Trần", target.Name)
	})

	t.Run("malformed", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

		var target payload
		err := requestutil.DecodeJSON(request, &target)
		assert.ErrorIs(t, err, validate.ErrInvalidJSON)
	})

	t.Run("oversized", func(t *testing.T) {
		huge := `{"name":"` + strings.Repeat("a", constants.MaxRequestBodyBytes) + `"}`
		request := httptest.NewRequest("POST", "/", strings.NewReader(huge))

		var target payload
		err := requestutil.DecodeJSON(request, &target)
		assert.ErrorIs(t, err, validate.ErrInvalidJSON)
	})
}
