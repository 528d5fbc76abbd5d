/* Copyright 2025 Libram Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/libram/libram/pkg/server/database"
	"github.com/libram/libram/pkg/server/mailer"
	"github.com/pkg/errors"
)

func getDomainFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing url")
	}

	host := u.Hostname()
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host, nil
	}
	domain := parts[len(parts)-2] + "." + parts[len(parts)-1]

	return domain, nil
}

func getNoreplySender(baseURL string) (string, error) {
	domain, err := getDomainFromURL(baseURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing base url")
	}

	addr := fmt.Sprintf("noreply@%s", domain)
	return addr, nil
}

// SendWelcomeEmail sends welcome email
func (a *App) SendWelcomeEmail(user database.User) error {
	if !user.Email.Valid {
		return ErrEmailRequired
	}
	email := user.Email.String

	from, err := getNoreplySender(a.BaseURL)
	if err != nil {
		return errors.Wrap(err, "getting the sender email")
	}

	data := mailer.WelcomeTmplData{
		AccountEmail: email,
		Name:         user.Name,
		BaseURL:      a.BaseURL,
	}

	if err := a.EmailBackend.SendEmail(mailer.EmailTypeWelcome, from, []string{email}, data); err != nil {
		return errors.Wrapf(err, "sending welcome email for %s", email)
	}

	return nil
}
