package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

const baseURL = "http://localhost:8080"

var token string

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", 200)

	// 2. Register + Login
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	register(email)
	token = login(email)
	checkEndpoint("GET", "/api/auth/me", 200)

	// 3. Upload a stock report twice; the second upload must replace the first
	stockFile := buildStockReport()
	uploadFile("/api/stock_holdings/upload", "holdings.xlsx", stockFile, 200)
	uploadFile("/api/stock_holdings/upload", "holdings.xlsx", stockFile, 200)
	checkEndpoint("GET", "/api/stock_holdings/", 200)

	// 4. Wrong extension is rejected before parsing
	uploadFile("/api/stock_holdings/upload", "holdings.csv", stockFile, 400)

	// 5. Mutual fund report
	mfFile := buildMutualFundReport()
	uploadFile("/api/mutual_fund_holdings/upload", "mf.xlsx", mfFile, 200)
	checkEndpoint("GET", "/api/mutual_fund_holdings/", 200)

	fmt.Println("ALL TESTS PASSED")
}

func register(email string) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": "e2e-password"})
	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Fatalf("Register failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 201 {
		b, _ := io.ReadAll(resp.Body)
		log.Fatalf("Register failed with status %d: %s", resp.StatusCode, string(b))
	}
}

func login(email string) string {
	body, _ := json.Marshal(map[string]string{"email": email, "password": "e2e-password"})
	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		log.Fatalf("Login failed with status %d: %s", resp.StatusCode, string(b))
	}
	var res map[string]string
	json.NewDecoder(resp.Body).Decode(&res)
	return res["access_token"]
}

func checkEndpoint(method, path string, expectedStatus int) {
	req, _ := http.NewRequest(method, baseURL+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}

func uploadFile(path, filename string, content []byte, expectedStatus int) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(content)
	mw.Close()

	req, _ := http.NewRequest("POST", baseURL+path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Upload failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Upload to %s: expected status %d, got %d. Body: %s", path, expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Uploaded %s: %s\n", filename, string(respBody))
}

func buildStockReport() []byte {
	header := []interface{}{"Stock Name", "ISIN", "Quantity", "Average buy price", "Buy value", "Closing price", "Closing value", "Unrealised P&L"}
	rows := [][]interface{}{
		{"Reliance Industries", "INE002A01018", 10, 2400.5, 24005, 2500, 25000, 995},
		{"Infosys", "INE009A01021", 5, 1400, 7000, 1500.25, 7501.25, 501.25},
	}
	return buildWorkbook(11, header, rows)
}

func buildMutualFundReport() []byte {
	header := []interface{}{"Scheme Name", "AMC", "Category", "Sub-category", "Folio No.", "Source", "Units", "Invested Value", "Current Value", "Returns", "XIRR"}
	rows := [][]interface{}{
		{"Parag Parikh Flexi Cap Fund", "PPFAS", "Equity", "Flexi Cap", "1234567/89", "Groww", 120.5, 10000, 12500, 2500, "14.2%"},
	}
	return buildWorkbook(21, header, rows)
}

// buildWorkbook writes boilerplate rows, then the header at headerRow
// (1-based), then the data rows, matching the Groww export layout.
func buildWorkbook(headerRow int, header []interface{}, rows [][]interface{}) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Holdings statement")
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			f.SetCellValue(sheet, cell, v)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Fatalf("build workbook: %v", err)
	}
	return buf.Bytes()
}
