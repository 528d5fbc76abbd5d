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

package database

import (
	"time"

	"github.com/libram/libram/pkg/server/log"
	"gorm.io/gorm"
)

// StartWALCheckpointing periodically checkpoints the write-ahead log so that
// it does not grow unbounded
func StartWALCheckpointing(db *gorm.DB, interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)

			if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);").Error; err != nil {
				log.ErrorWrap(err, "checkpointing WAL")
			}
		}
	}()
}

// StartPeriodicVacuum periodically vacuums the database to reclaim space
func StartPeriodicVacuum(db *gorm.DB, interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)

			if err := db.Exec("VACUUM;").Error; err != nil {
				log.ErrorWrap(err, "vacuuming database")
			}
		}
	}()
}
