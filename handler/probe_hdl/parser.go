/*
 * Copyright 2024 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package probe_hdl

import (
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"golang.org/x/net/html"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	daysRemainingRegex  = regexp.MustCompile(`(?is)trial.*?(\d+)\s*days?\s*remaining`)
	hoursRemainingRegex = regexp.MustCompile(`(?is)(\d+)\s*hours?\s*remaining`)
	expiresInRegex      = regexp.MustCompile(`(?is)trial.*?expires?\s*in\s*(\d+)`)
)

// extractVisibleText flattens an HTML document to its rendered text, skipping
// script and style content.
func extractVisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}

// parseTrialInfo scans status page text for a trial countdown. Day counts
// convert to hours; without a countdown, any expiry or emergency notice
// reads as the terminal expired state.
func parseTrialInfo(text string) (model.TrialInfo, bool) {
	if match := daysRemainingRegex.FindStringSubmatch(text); match != nil {
		days, err := strconv.Atoi(match[1])
		if err == nil {
			return model.NewTrialInfo(days*24, remainingDisplay(days, "day"), false, false), true
		}
	}
	if match := hoursRemainingRegex.FindStringSubmatch(text); match != nil {
		hours, err := strconv.Atoi(match[1])
		if err == nil {
			return model.NewTrialInfo(hours, remainingDisplay(hours, "hour"), false, false), true
		}
	}
	if match := expiresInRegex.FindStringSubmatch(text); match != nil {
		hours, err := strconv.Atoi(match[1])
		if err == nil {
			return model.NewTrialInfo(hours, remainingDisplay(hours, "hour"), false, false), true
		}
	}
	lower := strings.ToLower(text)
	if strings.Contains(lower, "expired") || strings.Contains(lower, "emergency") {
		return model.NewTrialInfo(0, "Expired", true, false), true
	}
	return model.TrialInfo{}, false
}

func remainingDisplay(value int, unit string) string {
	if value == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", value, unit)
}

// syntheticTrialInfo derives a stable placeholder from the port number so
// repeated calls for the same gateway agree.
func syntheticTrialInfo(port int) model.TrialInfo {
	switch port % 5 {
	case 0:
		return model.NewTrialInfo(168, "7 days", false, true)
	case 1:
		return model.NewTrialInfo(72, "3 days", false, true)
	case 2:
		return model.NewTrialInfo(24, "1 day", false, true)
	case 3:
		return model.NewTrialInfo(6, "6 hours", false, true)
	default:
		return model.NewTrialInfo(0, "Expired", true, true)
	}
}
