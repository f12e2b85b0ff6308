package metrics

// ComputeMetrics runs the full derivation pipeline with the default role
// tables: feature derivation, role scores, then column-max normalization.
//
// Previously derived columns in raw are discarded and recomputed, so running
// it on its own output yields an identical table.
func ComputeMetrics(raw *Table) *Table {
	return compute(raw, DefaultRoles())
}

// ComputeMetricsWith is ComputeMetrics with caller-supplied role tables,
// which are checked with ValidateRoles first.
func ComputeMetricsWith(raw *Table, roles []Role) (*Table, error) {
	if err := ValidateRoles(roles); err != nil {
		return nil, err
	}
	return compute(raw, roles), nil
}

func compute(raw *Table, roles []Role) *Table {
	if raw == nil {
		raw = NewTable(nil, nil, nil)
	}
	t := stripDerived(raw, roles)
	t = DeriveFeatures(t)
	t = DeriveScores(t, roles)
	return Normalize(t)
}

// stripDerived removes every column the pipeline produces.
func stripDerived(t *Table, roles []Role) *Table {
	derived := make(map[string]bool, len(FeatureColumns)+len(roles))
	for _, c := range FeatureColumns {
		derived[c] = true
	}
	for _, c := range DefaultRoles() {
		derived[c.Column] = true
	}
	for _, role := range roles {
		derived[role.Column] = true
	}
	drop := func(col string) bool {
		return derived[col] || IsNormColumn(col)
	}

	var cols []string
	for _, c := range t.Columns() {
		if !drop(c) {
			cols = append(cols, c)
		}
	}
	return t.mapRows(cols, func(r Record) Record {
		return r.with(nil, drop)
	})
}
