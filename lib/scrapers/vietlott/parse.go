package vietlott

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"vietlott-backend/lib/htmlutil"
	"vietlott-backend/lib/products"
	"vietlott-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

var (
	drawIdPattern   = regexp.MustCompile(`#(\d+)`)
	drawDatePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	prevDrawPattern = regexp.MustCompile(`ClientDrawResult\(['"](\d+)['"]\)`)
)

// draw pages print dates day-first
const sourceDateLayout = "02/01/2006"

// parseDraw converts the embedded HTML fragment of one draw page into
// a DrawRecord, dispatching on the product's result shape. A fragment
// it cannot make sense of yields an error, the crawl loop treats that
// as a stop signal rather than a failure.
func parseDraw(cfg products.Config, fragment string) (*DrawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	record, err := parseHeader(doc)
	if err != nil {
		return nil, err
	}

	switch cfg.Shape {
	case products.ShapeTriplet:
		record.Result, err = parseTripletResult(doc)
	default:
		record.Result, err = parseNumericResult(doc, cfg.PickCount)
	}
	if err != nil {
		return nil, err
	}

	record.ProcessTime = timezone.Now()
	record.PrevID = parsePrevDraw(doc)
	return record, nil
}

// the header reads "Kỳ quay thưởng #01458 ngày 14/01/2026"
func parseHeader(doc *goquery.Document) (*DrawRecord, error) {
	header := doc.Find("h5").First()
	if header.Length() == 0 {
		return nil, fmt.Errorf("no draw header element")
	}
	text := htmlutil.CleanText(header.Text())

	idMatch := drawIdPattern.FindStringSubmatch(text)
	if idMatch == nil {
		return nil, fmt.Errorf("no draw id in header %q", text)
	}
	dateMatch := drawDatePattern.FindStringSubmatch(text)
	if dateMatch == nil {
		return nil, fmt.Errorf("no draw date in header %q", text)
	}
	date, err := time.Parse(sourceDateLayout, dateMatch[1])
	if err != nil {
		return nil, fmt.Errorf("parse draw date %q: %w", dateMatch[1], err)
	}

	return &DrawRecord{
		Date: NewDate(date),
		ID:   idMatch[1],
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func parseNumericResult(doc *goquery.Document, pickCount int) (Result, error) {
	container := doc.Find(".day_so_ket_qua_v2").First()
	if container.Length() == 0 {
		container = doc.Find(".day_so_ket_qua").First()
	}
	if container.Length() == 0 {
		return Result{}, fmt.Errorf("no result container")
	}

	var numbers []int
	for _, node := range container.Find("span").Nodes {
		text := htmlutil.CleanText(htmlutil.GetText(node))
		if !isDigits(text) {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}

	if len(numbers) < pickCount {
		return Result{}, fmt.Errorf("found %d result numbers, need %d", len(numbers), pickCount)
	}
	// anything past the pick count is a bonus or jackpot figure
	return Result{Numbers: numbers[:pickCount]}, nil
}

// triplet pages repeat one container per prize tier number, each
// holding exactly three single-digit balls
func parseTripletResult(doc *goquery.Document) (Result, error) {
	var triplets []string
	doc.Find(".day_so_ket_qua_v2").Each(func(_ int, group *goquery.Selection) {
		nodes := group.Find("span.bong_tron").Nodes
		if len(nodes) != 3 {
			return
		}
		var number strings.Builder
		for _, node := range nodes {
			digit := htmlutil.CleanText(htmlutil.GetText(node))
			if len(digit) != 1 || !isDigits(digit) {
				return
			}
			number.WriteString(digit)
		}
		triplets = append(triplets, number.String())
	})

	// the special and first prize tiers are always published, fewer
	// complete groups than that means a mangled page
	if len(triplets) < 2 {
		return Result{}, fmt.Errorf("found %d complete triplets, need at least 2", len(triplets))
	}
	return Result{Triplets: triplets}, nil
}

// parsePrevDraw pulls the id of the preceding draw out of the
// backward navigation anchor. An empty return means the earliest
// known draw was reached.
func parsePrevDraw(doc *goquery.Document) string {
	href := doc.Find("a.btn_chuyendulieu_left").First().AttrOr("href", "")
	match := prevDrawPattern.FindStringSubmatch(href)
	if match == nil {
		return ""
	}
	return match[1]
}
