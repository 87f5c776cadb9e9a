// Package processor contains the core run loop for translating an article
// corpus. It decides per article whether to skip, translate or degrade,
// coordinates sentence segmentation, URL masking and the translation client,
// appends the audit trail, and checkpoints the job state so interrupted runs
// resume without duplicate work.
package processor
