package reconcile

// add appends results to the plan, partitioning them and updating the summary.
func (p *Plan) add(results ...Result) {
	for _, r := range results {
		p.Results = append(p.Results, r)
		switch r.State {
		case StateNeedsDownload:
			p.Downloadable = append(p.Downloadable, r)
		case StateSkipped:
			p.Skipped = append(p.Skipped, r)
		case StateUpToDate:
			p.UpToDate = append(p.UpToDate, r)
		}
	}
	p.summarize()
}

func (p *Plan) summarize() {
	s := Summary{
		Total:        len(p.Results),
		Downloadable: len(p.Downloadable),
		Skipped:      len(p.Skipped),
		UpToDate:     len(p.UpToDate),
		Failures:     len(p.Failures),
	}
	for _, c := range p.Resolution {
		switch c.Kind {
		case ChangeRenamed:
			s.Renamed++
		case ChangeCreated:
			s.Created++
		case ChangeRefreshed:
			s.Refreshed++
		}
	}
	p.Summary = s
}

// DownloadableNames returns the names of entries that need downloading, in order.
func (p *Plan) DownloadableNames() []string {
	return names(p.Downloadable)
}

// SkippedNames returns the names of skipped entries, in order.
func (p *Plan) SkippedNames() []string {
	return names(p.Skipped)
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}
