// Package confidence grades ordering decisions after the pipeline has
// run: a per-page assessment with issues and evidence, document-level
// metrics, and a report that says whether a human should look at the
// result before it is trusted.
//
// Scoring is multiplicative: each detected weakness scales the page's
// confidence down, so several small problems compound the way a reviewer
// would expect them to.
package confidence
