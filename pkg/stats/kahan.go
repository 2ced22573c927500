package stats

// KahanSum is a compensated floating-point accumulator. The compensation
// term carries the low-order bits lost when small values are folded into
// a large running total.
type KahanSum struct {
	sum  float64
	comp float64
}

// RestoreKahanSum rebuilds an accumulator from a stored snapshot.
func RestoreKahanSum(total, compensation float64) KahanSum {
	return KahanSum{sum: total, comp: compensation}
}

func (k *KahanSum) Add(x float64) {
	y := x - k.comp
	t := k.sum + y
	k.comp = (t - k.sum) - y
	k.sum = t
}

// Merge folds another sum's total and outstanding correction into k.
func (k *KahanSum) Merge(other KahanSum) {
	k.Add(other.sum)
	k.Add(-other.comp)
}

func (k KahanSum) Value() float64        { return k.sum }
func (k KahanSum) Compensation() float64 { return k.comp }
