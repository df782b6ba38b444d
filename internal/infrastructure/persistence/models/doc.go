// Package models contains the GORM persistence models. They carry the table
// mappings so the domain layer stays free of ORM tags.
package models
