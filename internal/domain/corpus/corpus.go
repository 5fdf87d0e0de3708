package corpus

// Corpus is an immutable reference dataset. Accessors return copies so a
// single *Corpus can be shared by concurrent assessments without locking.
type Corpus struct {
	records []ReferenceRecord
	bounds  Bounds
}

// New builds a Corpus from records and bounds. Features missing from bounds
// are computed over records.
func New(records []ReferenceRecord, bounds Bounds) *Corpus {
	own := make([]ReferenceRecord, len(records))
	copy(own, records)

	computed := ComputeBounds(own)
	merged := bounds.Map()
	for _, f := range Features {
		if _, ok := merged[f]; ok {
			continue
		}
		if r, ok := computed.Range(f); ok {
			merged[f] = r
		}
	}
	return &Corpus{records: own, bounds: Bounds{ranges: merged}}
}

// Empty returns a corpus with no records.
func Empty() *Corpus {
	return &Corpus{bounds: Bounds{ranges: map[Feature]Range{}}}
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// IsEmpty reports a corpus with no records. A nil corpus is empty.
func (c *Corpus) IsEmpty() bool { return c.Len() == 0 }

// Records returns a copy of the records in load order.
func (c *Corpus) Records() []ReferenceRecord {
	if c == nil {
		return nil
	}
	out := make([]ReferenceRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Bounds returns the normalization bounds.
func (c *Corpus) Bounds() Bounds {
	if c == nil {
		return Bounds{}
	}
	return c.bounds
}

//Personal.AI order the ending
