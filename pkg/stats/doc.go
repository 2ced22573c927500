// Package stats computes confidence intervals for means, quantiles,
// proportions, and mean differences.
//
// All estimators come in two shapes: one-shot functions over sample
// slices (MeanCI, QuantileCI, ProportionCI, PairedCI, UnpairedCI) and
// incremental accumulators with an associative Merge, so partial
// statistics can be computed on separate workers or restored from
// storage and combined later.
//
// Critical values use Student-t up to 100,000 degrees of freedom and
// the normal distribution beyond. Proportion and quantile intervals use
// the Wilson score interval, which stays inside [0, 1] and behaves at
// extreme rates.
package stats
