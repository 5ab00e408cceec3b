// Package epidoc converts EpiDoc XML, the TEI dialect for inscriptions, into
// HTML fragments by running it through an XSLT stylesheet.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, exec/, goquery/).
package epidoc
