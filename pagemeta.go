// Package pagemeta extracts normalized page metadata (title, description,
// canonical URL, icon, preview image, type, language, provider, keywords)
// from HTML documents using declarative, prioritized rule sets.
//
// This package contains the rule model, the evaluation engine, and domain
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, http/, yaml/).
package pagemeta
