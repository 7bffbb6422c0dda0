package xhtmldoc

import (
	"maps"

	"golang.org/x/net/html"
)

// named references commonly found in hand written XHTML which XML parser
// does not know about.
var entityNames = []string{
	"nbsp", "ensp", "emsp", "thinsp", "shy", "zwnj", "zwj",
	"ndash", "mdash", "hellip", "bull", "middot", "prime", "Prime",
	"lsquo", "rsquo", "sbquo", "ldquo", "rdquo", "bdquo", "laquo", "raquo", "lsaquo", "rsaquo",
	"copy", "reg", "trade", "sect", "para", "deg", "plusmn", "times", "divide", "micro",
	"frac14", "frac12", "frac34", "sup1", "sup2", "sup3",
	"cent", "pound", "yen", "euro", "curren",
	"iexcl", "iquest", "dagger", "Dagger", "larr", "rarr", "uarr", "darr", "harr",
	"agrave", "aacute", "acirc", "atilde", "auml", "aring", "aelig", "ccedil",
	"egrave", "eacute", "ecirc", "euml", "igrave", "iacute", "icirc", "iuml",
	"ntilde", "ograve", "oacute", "ocirc", "otilde", "ouml", "oslash",
	"ugrave", "uacute", "ucirc", "uuml", "yacute", "yuml", "szlig",
	"Agrave", "Aacute", "Acirc", "Auml", "Ccedil", "Eacute", "Ntilde", "Ouml", "Uuml",
}

var entities = func() map[string]string {
	m := make(map[string]string, len(entityNames))
	for _, name := range entityNames {
		if v := html.UnescapeString("&" + name + ";"); v != "&"+name+";" {
			m[name] = v
		}
	}
	return m
}()

// Entities returns HTML named character references as etree entity map.
func Entities() map[string]string {
	return maps.Clone(entities)
}
