package storage

import (
	"testing"
	
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	testCases := []struct {
		url    string
		folder string
		want   string
		ok     bool
	}{
		{"https://res.cloudinary.com/jstore/image/upload/v1729/products/benfica-home-ab12cd34.jpg", ProductFolder, "benfica-home-ab12cd34", true},
		{"https://res.cloudinary.com/jstore/image/upload/custom-orders/CU5678123456_1.png", CustomOrdersFolder, "CU5678123456_1", true},
		{"https://res.cloudinary.com/jstore/image/upload/v1729/custom-orders/x.jpg", ProductFolder, "", false},
		{"https://photo.yupoo.com/products/a.jpg", ProductFolder, "", false},
		{"", ProductFolder, "", false},
		{"https://res.cloudinary.com/jstore/image/upload/products/", ProductFolder, "", false},
	}
	
	for _, tc := range testCases {
		got, ok := PublicIDFromURL(tc.url, tc.folder)
		require.Equal(t, tc.ok, ok, tc.url)
		require.Equal(t, tc.want, got, tc.url)
	}
}
