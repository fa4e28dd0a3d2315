// Package fetch downloads the public source datasets: the OEWS by-state
// ZIP from bls.gov and the O*NET skills workbook. It paces requests,
// presents a browser-like user agent (both hosts reject the default Go
// client), and can resolve the latest OEWS release link from the BLS
// tables page.
package fetch
