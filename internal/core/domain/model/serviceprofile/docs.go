// Package serviceprofile contains the catalog side of repair and cleaning
// services: the company profile a service actor owns, the offerings it lists
// and the reviews clients leave after delivery.
package serviceprofile
