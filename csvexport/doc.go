// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package csvexport converts tallied or raw vote data into safely-escaped CSV
text.

Every field passes through two layers of defense:

  - SanitizeForSpreadsheet prefixes values starting with =, +, - or @ with a
    single quote so spreadsheet programs treat them as literal text rather
    than formulas (the CSV-injection vector).
  - EscapeCSVField quote-wraps values containing the delimiter, quotes, or
    line breaks, doubling embedded quotes.

Output uses CRLF row terminators with a trailing CRLF, and by default carries
a UTF-8 byte-order mark so Excel detects the encoding.
*/
package csvexport
