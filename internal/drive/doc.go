// Package drive reads cover art from Google Drive.
//
// Images in the discography sheet are referenced by Drive share links such as
// https://drive.google.com/open?id=FILE_ID. Client resolves those file ids to a
// MIME type and a content stream through the Drive v3 API, authenticated with
// a service account.
//
// The resolver depends on the FileStore interface rather than Client, so a
// run without credentials simply has no store.
package drive
