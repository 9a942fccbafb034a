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
	"github.com/grailbio/hts/sam"
)

// cigarOpTypes maps a CIGAR operation code to its sam type.
var cigarOpTypes = map[byte]sam.CigarOpType{
	'M': sam.CigarMatch,
	'I': sam.CigarInsertion,
	'D': sam.CigarDeletion,
	'N': sam.CigarSkipped,
	'S': sam.CigarSoftClipped,
	'H': sam.CigarHardClipped,
	'P': sam.CigarPadded,
	'=': sam.CigarEqual,
	'X': sam.CigarMismatch,
}

// cigarToken is one <count><op> run of a CIGAR string. start and end
// are byte offsets of the run within the string.
type cigarToken struct {
	op         sam.CigarOp
	start, end int
}

// maxCigarOpLen is the largest count a sam.CigarOp can hold.
const maxCigarOpLen = 1<<28 - 1

// lexCigar splits a CIGAR string into (count, op) runs. Bytes that do
// not form a run of digits followed by a known op code are skipped, so
// a malformed string yields only the runs that are well formed. A run
// whose count exceeds maxCigarOpLen is malformed too.
func lexCigar(cigar string) []cigarToken {
	var tokens []cigarToken
	for i := 0; i < len(cigar); {
		start := i
		n := 0
		tooLong := false
		for i < len(cigar) && cigar[i] >= '0' && cigar[i] <= '9' {
			if !tooLong {
				if n > maxCigarOpLen/10 {
					tooLong = true
				} else if n = n*10 + int(cigar[i]-'0'); n > maxCigarOpLen {
					tooLong = true
				}
			}
			i++
		}
		if i == start {
			i++
			continue
		}
		if i == len(cigar) {
			break
		}
		t, ok := cigarOpTypes[cigar[i]]
		i++
		if !ok || tooLong {
			continue
		}
		tokens = append(tokens, cigarToken{op: sam.NewCigarOp(t, n), start: start, end: i})
	}
	return tokens
}

// AdjustedStart returns the 5' start of the molecule a read came
// from, given its 1-based leftmost mapped position, its CIGAR string
// and its strand.
//
// On the plus strand a leading soft clip is subtracted from pos. On
// the minus strand the reference-consuming span and any trailing soft
// clip are added to pos, minus one for the last consumed base.
func AdjustedStart(pos int, cigar string, s Strand) int {
	tokens := lexCigar(cigar)
	if s == Plus {
		if len(tokens) > 0 && tokens[0].start == 0 && tokens[0].op.Type() == sam.CigarSoftClipped {
			return pos - tokens[0].op.Len()
		}
		return pos
	}

	end := pos
	for _, t := range tokens {
		if t.op.Type().Consumes().Reference == 1 {
			end += t.op.Len()
		}
	}
	// The trailing soft clip is counted as if it extended the alignment
	// on the reference.
	if n := len(tokens); n > 0 && tokens[n-1].end == len(cigar) && tokens[n-1].op.Type() == sam.CigarSoftClipped {
		end += tokens[n-1].op.Len()
	}
	return end - 1
}
