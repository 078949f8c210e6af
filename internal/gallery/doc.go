// Package gallery discovers the images shown by a carousel.
//
// Scan lists image files (png, jpg, jpeg, webp, gif, avif, svg) in a
// directory in natural order, so "2.jpg" precedes "10.jpg". An optional
// gallery.yaml in the same directory sets a title, a markdown description
// and per-file titles; files it lists are shown first in the listed order.
//
// Load wraps Scan and substitutes generated placeholders when a directory is
// missing or empty, which keeps a freshly configured gallery from rendering
// blank.
//
// Example gallery.yaml:
//
//	title: Summer tour
//	description: |
//	  Photos from the **2024** open air shows.
//	images:
//	  - file: 03.jpg
//	    title: Opening night
package gallery
