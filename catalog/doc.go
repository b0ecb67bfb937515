// Package catalog maps a (country, city) pair to the key of the stored road
// graph for that city.
package catalog
