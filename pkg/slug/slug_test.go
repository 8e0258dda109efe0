// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvhoang/vietsu/pkg/slug"
)

/*
TestFrom_Vietnamese verifies accent and đ handling for Vietnamese titles.
*/
func TestFrom_Vietnamese(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bac_thuoc", "Thời kỳ Bắc thuộc", "thoi-ky-bac-thuoc"},
		{"nha_dinh", "Nhà Đinh", "nha-dinh"},
		{"dinh_tien_le", "Nhà Đinh – Tiền Lê", "nha-dinh-tien-le"},
		{"tran_hung_dao", "Trần Hưng Đạo", "tran-hung-dao"},
		{"co_loa", "Thành Cổ Loa", "thanh-co-loa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Sanitization verifies punctuation, spacing, and hyphen cleanup.
*/
func TestFrom_Sanitization(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already_clean", "nha-tran", "nha-tran"},
		{"spaces_and_case", "Chien Thang Bach Dang", "chien-thang-bach-dang"},
		{"punctuation", "Khởi nghĩa Hai Bà Trưng (40–43)", "khoi-nghia-hai-ba-trung-40-43"},
		{"leading_trailing", "  --Văn Miếu--  ", "van-mieu"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
