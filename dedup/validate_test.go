package dedup

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		opts  Opts
		valid bool
	}{
		{Opts{InputPath: "in.sam", UmiFile: "umis.txt"}, true},
		{Opts{InputPath: "in.sam", UmiFile: "umis.txt", Paired: true}, false},
		{Opts{InputPath: "in.sam"}, false},
		{Opts{UmiFile: "umis.txt"}, false},
		{Opts{InputPath: "in.sam", UmiFile: "umis.txt", HotspotMinDups: -1}, false},
		{Opts{InputPath: "in.sam", UmiFile: "umis.txt", OutputPath: "in.sam"}, false},
	}
	for _, test := range tests {
		opts := test.opts
		err := validate(&opts)
		if test.valid {
			assert.NoError(t, err, "opts %+v", test.opts)
		} else {
			assert.True(t, errors.Is(errors.Invalid, err), "opts %+v: %v", test.opts, err)
		}
	}
}

func TestValidateDefaultOutput(t *testing.T) {
	opts := Opts{InputPath: "/data/in.sam", UmiFile: "umis.txt"}
	assert.NoError(t, validate(&opts))
	assert.Equal(t, "/data/in.sam_deduped", opts.OutputPath)

	opts = Opts{InputPath: "/data/in.sam", UmiFile: "umis.txt", OutputPath: "/data/out.sam"}
	assert.NoError(t, validate(&opts))
	assert.Equal(t, "/data/out.sam", opts.OutputPath)
}

// Paired-end input is rejected even when the umi list is also missing.
func TestValidateOrder(t *testing.T) {
	err := validate(&Opts{InputPath: "in.sam", Paired: true})
	assert.Contains(t, err.Error(), "paired-end")
	err = validate(&Opts{InputPath: "in.sam"})
	assert.Contains(t, err.Error(), "randomer")
}
