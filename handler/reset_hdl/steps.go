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

package reset_hdl

// Element lookup strategies for the gateway web console. The console markup
// differs between gateway versions, so every interaction tries a list of
// selectors in order and uses the first that matches.

var titleTokens = []string{"ignition", "gateway"}

var usernameSelectors = []selector{
	css("input[name='username']"),
	css("#username"),
	css("input[type='text']"),
}

var passwordSelectors = []selector{
	css("input[name='password']"),
	css("#password"),
	css("input[type='password']"),
}

var loginSubmitSelectors = []selector{
	css("button[type='submit']"),
	css("input[type='submit']"),
	xpath("//button[contains(text(), 'Login')]"),
	xpath("//button[contains(text(), 'Log In')]"),
}

// licensingPaths are tried in order until one serves a licensing page.
var licensingPaths = []string{
	"/main/config/system/licensing",
	"/main/web/config/system.licensing",
	"/config/system/licensing",
	"/system/licensing",
	"/licensing",
}

// licensingIndicators identify a licensing page by its text content; any
// single match is sufficient.
var licensingIndicators = []string{
	"trial",
	"license",
	"licensing",
	"reset",
	"emergency",
}

var resetSelectors = []selector{
	xpath("//*[contains(text(), 'Reset')]"),
	xpath("//*[contains(text(), 'Emergency')]"),
	xpath("//*[contains(text(), 'Trial')]"),
	css("input[value*='Reset']"),
	css("input[value*='Emergency']"),
}

var confirmSelectors = []selector{
	xpath("//*[contains(text(), 'Yes')]"),
	xpath("//*[contains(text(), 'OK')]"),
	xpath("//*[contains(text(), 'Confirm')]"),
	css("input[value*='Yes']"),
	css("input[value*='OK']"),
}

// Verification keywords scanned in the page text after the reset was
// triggered. Success keywords include the restored countdown values.
var successKeywords = []string{
	"trial reset",
	"reset successful",
	"emergency reset",
	"168 hours",
	"7 days",
}

var failureKeywords = []string{
	"error",
	"failed",
	"invalid",
	"expired",
}
