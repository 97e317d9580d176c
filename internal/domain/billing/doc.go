// Package billing provides the domain model for aggregated billing data.
//
// Billing data originates in external systems (an accounting suite, a cloud
// provider's billing API) and is fetched on demand rather than stored here.
// The model therefore carries provenance with every value: which source an
// invoice came from, which currency it was priced in originally, and which
// exchange rate produced the displayed amount.
package billing
