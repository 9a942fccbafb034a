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
	"fmt"

	"github.com/grailbio/hts/sam"
)

// Strand is the reference strand a read maps to.
type Strand byte

const (
	Plus  Strand = '+'
	Minus Strand = '-'
)

func (s Strand) String() string {
	return string(s)
}

// ResolveStrand returns Minus iff the reverse bit (0x10) of flag is
// set. All other bits are ignored.
func ResolveStrand(flag sam.Flags) Strand {
	if flag&sam.Reverse != 0 {
		return Minus
	}
	return Plus
}

// positionKey identifies a group of reads sharing a UMI, a reference
// and an adjusted 5' start. Reads in the same group are duplicates of
// each other when they also share a strand.
type positionKey struct {
	umi   string
	chrom string
	pos   int
}

// duplicateKey is the full signature of a read.
type duplicateKey struct {
	positionKey
	strand Strand
}

func (k *duplicateKey) String() string {
	return fmt.Sprintf("(%s,%s,%d,%s)", k.umi, k.chrom, k.pos, k.strand)
}

// strandSet is a bitmask of the strands seen for one positionKey.
type strandSet uint8

func strandBit(s Strand) strandSet {
	if s == Minus {
		return 2
	}
	return 1
}

func (s strandSet) has(strand Strand) bool {
	return s&strandBit(strand) != 0
}
