package planner

// SummaryLine is one flattened entry on the checkout-style payment summary.
type SummaryLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BucketSummary groups a bucket's summary lines with their subtotal.
type BucketSummary struct {
	Items    []SummaryLine `json:"items"`
	Subtotal float64       `json:"subtotal"`
}

// Summary is the checkout-style payment summary: flattened lines with
// normalized numeric prices, the grand total, and a per-bucket breakdown.
// The subtotals use the same price coercion as TotalAmount, so the total
// always equals the sum of the breakdown subtotals.
type Summary struct {
	Items       []SummaryLine            `json:"items"`
	TotalAmount float64                  `json:"totalAmount"`
	Breakdown   map[Bucket]BucketSummary `json:"breakdown"`
}

// PaymentSummary builds the checkout summary from the current plan.
func (p *Planner) PaymentSummary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()

	summary := Summary{
		Items:     []SummaryLine{},
		Breakdown: make(map[Bucket]BucketSummary, len(Buckets())),
	}

	for _, b := range Buckets() {
		bucketSummary := BucketSummary{Items: []SummaryLine{}}
		for _, item := range *p.plan.bucket(b) {
			line := SummaryLine{
				ID:       item.ID,
				Name:     item.Name,
				Type:     b.Label(),
				Price:    item.Amount(),
				Quantity: 1,
			}
			bucketSummary.Items = append(bucketSummary.Items, line)
			bucketSummary.Subtotal += line.Price
			summary.Items = append(summary.Items, line)
		}
		summary.Breakdown[b] = bucketSummary
		summary.TotalAmount += bucketSummary.Subtotal
	}

	return summary
}
