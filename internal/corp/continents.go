//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package corp

import (
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"strings"
)

// UN General Debate delegations by ISO3 code; a few defunct states (CSK, DDR, YUG, YMD, ZAR) and "EU" are included
var continents = map[string][]string{
	"Africa": {
		"DZA", "AGO", "BEN", "BWA", "BFA", "BDI", "CPV", "CMR", "CAF", "TCD",
		"COM", "COG", "COD", "CIV", "DJI", "EGY", "GNQ", "ERI", "SWZ", "ETH",
		"GAB", "GMB", "GHA", "GIN", "GNB", "KEN", "LSO", "LBR", "LBY", "MDG",
		"MWI", "MLI", "MRT", "MUS", "MAR", "MOZ", "NAM", "NER", "NGA", "RWA",
		"STP", "SEN", "SYC", "SLE", "SOM", "ZAF", "SSD", "SDN", "TZA", "TGO",
		"TUN", "UGA", "ZMB", "ZWE", "ZAR",
	},
	"Americas": {
		"ATG", "ARG", "BHS", "BRB", "BLZ", "BOL", "BRA", "CAN", "CHL", "COL",
		"CRI", "CUB", "DMA", "DOM", "ECU", "SLV", "GRD", "GTM", "GUY", "HTI",
		"HND", "JAM", "MEX", "NIC", "PAN", "PRY", "PER", "KNA", "LCA", "VCT",
		"SUR", "TTO", "USA", "URY", "VEN",
	},
	"Asia": {
		"AFG", "ARM", "AZE", "BHR", "BGD", "BTN", "BRN", "KHM", "CHN", "CYP",
		"GEO", "IND", "IDN", "IRN", "IRQ", "ISR", "JPN", "JOR", "KAZ", "KWT",
		"KGZ", "LAO", "LBN", "MYS", "MDV", "MNG", "MMR", "NPL", "PRK", "OMN",
		"PAK", "PSE", "PHL", "QAT", "SAU", "SGP", "KOR", "LKA", "SYR", "TWN",
		"TJK", "THA", "TLS", "TUR", "TKM", "ARE", "UZB", "VNM", "YEM", "YMD",
	},
	"Europe": {
		"ALB", "AND", "AUT", "BLR", "BEL", "BIH", "BGR", "HRV", "CZE", "DNK",
		"EST", "FIN", "FRA", "DEU", "GRC", "HUN", "ISL", "IRL", "ITA", "LVA",
		"LIE", "LTU", "LUX", "MLT", "MDA", "MCO", "MNE", "NLD", "MKD", "NOR",
		"POL", "PRT", "ROU", "RUS", "SMR", "SRB", "SVK", "SVN", "ESP", "SWE",
		"CHE", "UKR", "GBR", "VAT", "CSK", "DDR", "YUG", "EU",
	},
	"Oceania": {
		"AUS", "FJI", "KIR", "MHL", "FSM", "NRU", "NZL", "PLW", "PNG", "WSM",
		"SLB", "TON", "TUV", "VUT",
	},
}

var iso3continent = func() map[string]string {
	m := make(map[string]string)
	for cont, codes := range continents {
		for _, c := range codes {
			m[c] = cont
		}
	}
	return m
}()

// Continent - the continent of an ISO3 country code; unknown codes yield vv.UNKNOWNCONT
func Continent(iso3 string) string {
	if c, ok := iso3continent[strings.ToUpper(strings.TrimSpace(iso3))]; ok {
		return c
	}
	return vv.UNKNOWNCONT
}
