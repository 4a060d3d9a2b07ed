/*
Package engine implements the feed processing core shared by the tavern bots.

A run is a single sequential pass over a remote feed:

  - [BoundedPager] turns a cursor-based [PageSource] into a lazy [Iterator], bounded by a page-fetch ceiling and a staleness cutoff.
  - [Pipeline] filters items through ordered [Stage] predicates, short-circuiting on the first rejection. [ConversationGuard] is the expensive, network-backed stage and is always placed last.
  - [Compose] splits a message into a [ThreadPlan] of length-bounded posts and [Publish] creates them one at a time, each replying to the previous one.
  - [SelectionPolicy] picks reblog candidates from a whole fetched batch.

Nothing here keeps state across runs, and nothing runs concurrently: every network call is awaited before the next item is pulled.
*/
package engine
