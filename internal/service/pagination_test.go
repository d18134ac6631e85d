package service

import (
	"testing"

	"academy-service/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePage(t *testing.T) {
	testCases := []struct {
		name       string
		param      string
		total      int
		wantNumber int
		wantOffset int
		wantPages  int
		wantErr    bool
	}{
		{name: "default first page", param: "", total: 25, wantNumber: 1, wantOffset: 0, wantPages: 3},
		{name: "explicit page", param: "2", total: 25, wantNumber: 2, wantOffset: 10, wantPages: 3},
		{name: "last", param: "last", total: 25, wantNumber: 3, wantOffset: 20, wantPages: 3},
		{name: "exact multiple", param: "last", total: 20, wantNumber: 2, wantOffset: 10, wantPages: 2},
		{name: "empty listing has a first page", param: "1", total: 0, wantNumber: 1, wantOffset: 0, wantPages: 1},
		{name: "past the end", param: "4", total: 25, wantErr: true},
		{name: "zero", param: "0", total: 25, wantErr: true},
		{name: "garbage", param: "abc", total: 25, wantErr: true},
		{name: "second page of empty listing", param: "2", total: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := resolvePage(tc.param, tc.total, 10)
			if tc.wantErr {
				var nf *apperror.NotFoundError
				assert.ErrorAs(t, err, &nf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNumber, w.number)
			assert.Equal(t, tc.wantOffset, w.offset)
			assert.Equal(t, tc.wantPages, w.numPages)
		})
	}
}
