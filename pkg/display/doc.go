// Package display renders reports as colorized terminal text.
//
// A report is printed as nested headers, one per weekday, meal and
// restaurant, each centered in a fixed width and padded with '~':
//
//	# ~~~~~~~~~~~~~~~~~ Segunda-feira ~~~~~~~~~~~~~~~~~~ #
//	 # ~~~~~~~~~~~~~~~~~~~~ Almoço ~~~~~~~~~~~~~~~~~~~~ #
//	  # ~~~~~~~~~~~~~~~~~~ Central ~~~~~~~~~~~~~~~~~~~ #
//
//	   ➤  Arroz, feijão
//	   ♥  Strogonoff de frango
//	   ✗  Fígado acebolado
//
// Liked dishes are marked with ♥ and disliked ones with ✗. Colors are
// rendered with gookit/color and degrade to what the terminal supports;
// WithColor(false) prints plain text.
package display
