package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendJSON(method, url string, payload interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		jsonBody, _ := json.Marshal(payload)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

func sendFile(url, filename string, content []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, nil, err
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

func main() {
	color.Cyan("🚀 Starting Document Manager API Smoke Test\n")

	color.Yellow("\n1. Create Session")
	resp, body, err := sendJSON(http.MethodPost, "/sessions", map[string]interface{}{
		"name":                 "smoke-test",
		"similarity_threshold": 0.7,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var session struct {
		Id string `json:"id"`
	}
	_ = json.Unmarshal(body, &session)

	color.Yellow("\n2. Upload First Document (expect bucket1)")
	resp, body, err = sendFile("/sessions/"+session.Id+"/documents", "notes-a.txt",
		[]byte("Quarterly revenue grew twelve percent on strong subscription sales."))
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Yellow("\n3. Upload Second Document")
	resp, body, err = sendFile("/sessions/"+session.Id+"/documents", "notes-b.txt",
		[]byte("The quarterly report shows revenue growth driven by subscriptions."))
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Yellow("\n4. Session Folder Stats")
	resp, body, err = sendJSON(http.MethodGet, "/sessions/"+session.Id+"/folders", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Yellow("\n5. Cleanup")
	resp, body, err = sendJSON(http.MethodDelete, "/sessions/"+session.Id, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n🏁 Smoke test finished")
}
