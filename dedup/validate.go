// Copyright 2019 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dedup

import (
	"github.com/grailbio/base/errors"
)

const outputSuffix = "_deduped"

func validate(opts *Opts) error {
	if opts.Paired {
		return errors.E(errors.Invalid, "paired-end data is not supported")
	}
	if opts.UmiFile == "" {
		return errors.E(errors.Invalid, "randomer libraries are not supported;",
			"if the library was built with known UMIs, pass the UMI list with --umi")
	}
	if opts.InputPath == "" {
		return errors.E(errors.Invalid, "you must specify a sam file with --file")
	}
	if opts.HotspotMinDups < 0 {
		return errors.E(errors.Invalid, "hotspot-min-dups must be non-negative")
	}
	if opts.OutputPath == "" {
		opts.OutputPath = opts.InputPath + outputSuffix
	}
	if opts.OutputPath == opts.InputPath {
		return errors.E(errors.Invalid, "output path must differ from the input path")
	}
	return nil
}
