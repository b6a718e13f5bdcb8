// Package metar decodes and encodes METAR and SPECI aviation weather reports.
//
// # Report Layout
//
// A report is a sequence of space separated groups in a fixed order. Most
// groups are optional; only the station and the observation time are required.
//
//	[METAR|SPECI] [AUTO|COR] EDDM 222020Z [AUTO|COR]
//	  wind  visibility  directional-visibility...  RVR...
//	  weather... | //   VV   NCD|NSC   cloud-layers...
//	  temperature/dewpoint  pressure
//	  RE...  colour  WS...  runway-state...  sea-state
//	  NOSIG | TEMPO ... | BECMG ...   clouds-in-vicinity...
//	  RMK free text
//	  [=]
//
// Example:
//
//	EKVG 232250Z AUTO 31006KT 1000 R12/0800N BR OVC001/// 09/09 Q0995 RMK WIND SKEID 29012KT
//
// # Masked Values
//
// Automated stations write a run of slashes where a sensor could not report a
// value. The run has the exact width of the slot:
//
//	wind direction  ///      wind speed   //
//	visibility      ////     weather      //
//	cloud layer     ///      cloud height ///   cloud type ///
//	temperature     //       pressure     ////  colour code ///
//
// Such values decode to [Unknown] and encode back to the same run. A slash run
// of any other width in a numeric slot is an error of kind [KindInvalidNumber].
//
// Groups that are missing from the text are nil pointers or empty slices. The
// wind, visibility, temperature and pressure groups are always written back;
// when missing they decode to masked values, so "EDDM 222020Z 20/13" encodes
// as "EDDM 222020Z /////KT //// 20/13 Q////".
//
// # Units
//
//	Wind:        KT (knots), MPS (metres per second), KMH (kilometres per hour; KPH accepted)
//	Visibility:  metres, 9999 meaning 10 km or more; statute miles with an SM suffix
//	Cloud height and vertical visibility: hundreds of feet
//	Temperature: whole degrees Celsius, M prefix for negative values ("M00" is -0)
//	Pressure:    Q hectopascals, A hundredths of inches of mercury
//	RVR:         metres, or feet with an FT suffix
//
// # Canonical Form
//
// [Format] writes groups separated by single spaces and drops the "="
// terminator. Where the format has several spellings, one is chosen:
//
//	CCA          → COR
//	SKC, CLR     → NCD
//	KPH          → KMH
//	WS RWY23     → WS R23
//	R26/0800/N   → R26/0800N
//	AUTO EDDM …  → EDDM … AUTO
//
// # Errors
//
// [Parse] tries every alternative in order and remembers the failures at the
// furthest offset it reached. On failure it returns an [Errors] value listing
// them, each with a byte span into the input and a [ParseError.Snippet] that
// underlines the span.
package metar
