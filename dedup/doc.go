/*Package dedup removes PCR duplicates from position-sorted,
  single-end SAM text using unique molecular identifiers (UMIs).

  Two reads are duplicates if their:
    1) UMI
    2) reference
    3) adjusted 5' start
    4) strand
  are ALL identical. The first read with a given signature is kept and
  every later read with the same signature is removed. Header lines
  are always kept, and output order is input order.

  UMIs:

  The UMI is the longest run of A, C, G, T and N at the end of the
  read name, e.g. NS500451:154:HWKTMBGXX:1:11101:24260:1121:CTGTTCAC.
  Reads whose UMI is not in the known UMI list are removed. With
  CorrectUmis, an unknown UMI is first snapped to the known UMI with
  the smallest edit distance, if that UMI is unique.

  Adjusted 5' start:

  For a plus strand read, the 5' start is the leftmost mapped position
  minus any soft clip at the start of the CIGAR:

      pos=100 cigar=5S95M  -> 95

  For a minus strand read, the 5' end of the molecule is at the right
  end of the alignment. The lengths of the reference-consuming
  operations (M, D, N, =, X) and any trailing soft clip are added to
  the position, and one is subtracted:

      pos=100 cigar=90M10S -> 100 + 90 + 10 - 1 = 199

  Insertions, hard clips and padding never move the 5' start. The = and
  X operations are counted as well; deduplicators that sum only M, D
  and N give a different minus strand start for CIGARs using them.

  Malformed CIGARs never fail: runs that are not a count followed by a
  known operation, or whose count does not fit a BAM CIGAR operation
  (2^28-1), are ignored.

  Implementation:

  A Deduper makes a single forward pass over the input. It keeps an
  index from (UMI, reference, adjusted start) to the set of strands
  already kept there, so memory grows with the number of distinct
  signatures in the input. The index is never pruned.
*/
package dedup
