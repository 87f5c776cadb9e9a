// Package corpus manages the tabular job state of a translation run: the
// article table loaded from the input CSV, resume-merging against a prior
// checkpoint, and atomic checkpoint persistence. The checkpoint file doubles
// as the final output artifact.
package corpus
