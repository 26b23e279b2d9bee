// Command btl launches aria2c with today's BitTorrent tracker list, or, with
// --move-to, flattens downloaded video files into one directory.
//
// Arguments btl does not recognize are forwarded to aria2c unchanged in
// launch mode and treated as source directories in move mode.
package main
